// Package testutil holds helpers shared by package tests.
package testutil

import (
	"github.com/dalemusser/portfolio/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// BootTemplates compiles the shared partials plus every set registered so
// far and installs the result as the package-level engine. Call it from
// TestMain; sets register in init, so the packages under test must already
// be imported.
//
//	func TestMain(m *testing.M) {
//		if err := testutil.BootTemplates(); err != nil {
//			panic(err)
//		}
//		os.Exit(m.Run())
//	}
func BootTemplates() error {
	resources.LoadSharedTemplates()
	eng := templates.New(false)
	if err := eng.Boot(zap.NewNop()); err != nil {
		return err
	}
	templates.UseEngine(eng, zap.NewNop())
	return nil
}
