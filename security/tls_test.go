package security

import (
	"crypto/tls"
	"testing"

	"github.com/kbukum/loginauth/security/tlstest"
)

func TestTLSConfig_Build_Disabled(t *testing.T) {
	var nilCfg *TLSConfig
	for name, cfg := range map[string]*TLSConfig{"nil": nilCfg, "zero": {}} {
		t.Run(name, func(t *testing.T) {
			result, err := cfg.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != nil {
				t.Fatal("expected nil tls.Config")
			}
		})
	}
}

func TestTLSConfig_Build_ServerCert(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cfg := &TLSConfig{CertFile: certs.CertFile, KeyFile: certs.KeyFile}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Certificates) != 1 {
		t.Errorf("expected 1 certificate, got %d", len(result.Certificates))
	}
	if result.MinVersion != tls.VersionTLS12 {
		t.Errorf("expected MinVersion=TLS12, got %d", result.MinVersion)
	}
	if result.ClientAuth != tls.NoClientCert {
		t.Errorf("expected no client auth, got %v", result.ClientAuth)
	}
}

func TestTLSConfig_Build_MutualTLS(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cfg := &TLSConfig{
		CertFile:     certs.CertFile,
		KeyFile:      certs.KeyFile,
		ClientCAFile: certs.CAFile,
		MinVersion:   "1.3",
	}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ClientCAs == nil {
		t.Error("expected ClientCAs to be set")
	}
	if result.ClientAuth != tls.RequireAndVerifyClientCert {
		t.Errorf("expected RequireAndVerifyClientCert, got %v", result.ClientAuth)
	}
	if result.MinVersion != tls.VersionTLS13 {
		t.Errorf("expected MinVersion=TLS13, got %d", result.MinVersion)
	}
}

func TestTLSConfig_Build_Errors(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	badPEM := tlstest.WriteInvalidPEM(t, "bad-ca.pem")

	tests := []struct {
		name string
		cfg  TLSConfig
	}{
		{"missing files", TLSConfig{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"}},
		{"missing client CA", TLSConfig{CertFile: certs.CertFile, KeyFile: certs.KeyFile, ClientCAFile: "/nonexistent/ca.pem"}},
		{"invalid client CA", TLSConfig{CertFile: certs.CertFile, KeyFile: certs.KeyFile, ClientCAFile: badPEM}},
		{"bad version", TLSConfig{CertFile: certs.CertFile, KeyFile: certs.KeyFile, MinVersion: "1.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		wantErr bool
	}{
		{"nil", nil, false},
		{"zero", &TLSConfig{}, false},
		{"pair", &TLSConfig{CertFile: "cert.pem", KeyFile: "key.pem"}, false},
		{"TLS prefix", &TLSConfig{CertFile: "cert.pem", KeyFile: "key.pem", MinVersion: "TLS1.3"}, false},
		{"cert only", &TLSConfig{CertFile: "cert.pem"}, true},
		{"key only", &TLSConfig{KeyFile: "key.pem"}, true},
		{"client CA without cert", &TLSConfig{ClientCAFile: "ca.pem"}, true},
		{"unknown version", &TLSConfig{MinVersion: "1.1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTLSConfig_IsEnabled(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		enabled bool
	}{
		{"nil", nil, false},
		{"zero", &TLSConfig{}, false},
		{"client CA only", &TLSConfig{ClientCAFile: "ca.pem"}, false},
		{"cert", &TLSConfig{CertFile: "cert.pem", KeyFile: "key.pem"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEnabled(); got != tt.enabled {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.enabled)
			}
		})
	}
}
