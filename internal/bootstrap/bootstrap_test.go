package bootstrap

import (
	"testing"

	"go.uber.org/fx"
)

func TestGraphIsComplete(t *testing.T) {
	if err := fx.ValidateApp(
		coreOptions(),
		appOptions(),
		clientsOptions(),
	); err != nil {
		t.Fatalf("ValidateApp: %v", err)
	}
}
