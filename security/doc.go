// Package security builds the TLS configuration for the HTTP listener.
//
// TLS is off until a certificate and key are configured. Setting
// client_ca_file additionally requires and verifies client certificates.
//
//	cfg := security.TLSConfig{
//	    CertFile: "/etc/loginauth/tls/cert.pem",
//	    KeyFile:  "/etc/loginauth/tls/key.pem",
//	}
//
//	tlsConfig, err := cfg.Build()
package security
