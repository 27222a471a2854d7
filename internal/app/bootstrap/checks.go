package bootstrap

import (
	"context"
	"fmt"
	"os"

	healthfeature "github.com/dalemusser/portfolio/internal/app/features/health"
)

// publicDirCheck reports whether the static asset directory is readable.
func publicDirCheck(dir string) healthfeature.Check {
	return func(ctx context.Context) error {
		fi, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return ctx.Err()
	}
}
