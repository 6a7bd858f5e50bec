package config

import "testing"

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				App:    AppConfig{Name: "test-service"},
				Log:    LogConfig{Level: "info"},
				Solver: SolverConfig{Accuracy: 16, MaxSaturation: 100},
			},
			wantErr: false,
		},
		{
			name: "missing app name",
			cfg: Config{
				Log:    LogConfig{Level: "info"},
				Solver: SolverConfig{Accuracy: 16, MaxSaturation: 100},
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Log:    LogConfig{Level: "verbose"},
				Solver: SolverConfig{Accuracy: 16, MaxSaturation: 100},
			},
			wantErr: true,
		},
		{
			name: "zero accuracy",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Log:    LogConfig{Level: "info"},
				Solver: SolverConfig{Accuracy: 0, MaxSaturation: 100},
			},
			wantErr: true,
		},
		{
			name: "zero max_saturation",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Log:    LogConfig{Level: "info"},
				Solver: SolverConfig{Accuracy: 16, MaxSaturation: 0},
			},
			wantErr: true,
		},
		{
			name: "empty log level defaults to info",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Solver: SolverConfig{Accuracy: 16, MaxSaturation: 100},
			},
			wantErr: false,
		},
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

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "development"}}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to be true")
	}
	cfg.App.Environment = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to be false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "prod"}}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to be true")
	}
	cfg.App.Environment = "dev"
	if cfg.IsProduction() {
		t.Error("expected IsProduction() to be false")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db.internal",
		Port:     5432,
		Username: "mcf",
		Password: "secret",
		Database: "mcfsolve",
		SSLMode:  "disable",
	}
	want := "host=db.internal port=5432 user=mcf password=secret dbname=mcfsolve sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestCacheConfig_Address(t *testing.T) {
	c := CacheConfig{Host: "cache.internal", Port: 6379}
	if got := c.Address(); got != "cache.internal:6379" {
		t.Errorf("Address() = %q, want cache.internal:6379", got)
	}
}
