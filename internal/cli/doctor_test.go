package cli

import (
	"os"
	"testing"

	"github.com/archestra-labs/memcore/internal/config"
)

func TestDoctorDefaultConfigHasNoErrors(t *testing.T) {
	os.Clearenv()

	cfg := config.Load()
	diags := config.Validate(cfg)

	for _, d := range diags {
		if d.Severity == config.SeverityError {
			t.Fatalf("default config produced an error diagnostic: %s", d.Message)
		}
	}
}

func TestDoctorFlagsGatewayTokenAsGeminiKey(t *testing.T) {
	os.Clearenv()
	os.Setenv("GEMINI_API_KEY", "arch_pat_abcdef123456")

	cfg := config.Load()
	diags := config.Validate(cfg)

	found := false
	for _, d := range diags {
		if d.Severity == config.SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an error diagnostic for a gateway-token-shaped GEMINI_API_KEY")
	}
}
