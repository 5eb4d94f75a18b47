package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// CheckCompatibility reports whether a sweep file written for fileVersion can run on
// engineVersion. Major and minor must match; patch may differ. "main" on either side skips
// the check, and an empty fileVersion is treated as current.
//
//	engine 0.3.1, file 0.3.0 -> ok
//	engine 0.4.0, file 0.3.0 -> ErrCodeVersionMismatch
//	engine 0.3.0, file "x"   -> ErrCodeInvalidVersion
func CheckCompatibility(engineVersion, fileVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	fileVersion = strings.TrimPrefix(fileVersion, "v")

	if fileVersion == "" || engineVersion == "main" || fileVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid engine version %q", engineVersion)
	}

	fileSemver, err := semver.NewVersion(fileVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version %q", fileVersion)
	}

	if engineSemver.Major() != fileSemver.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"major version mismatch: engine is %d.x.x but config requires %d.x.x",
			engineSemver.Major(), fileSemver.Major())
	}

	if engineSemver.Minor() != fileSemver.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"minor version mismatch: engine is %d.%d.x but config requires %d.%d.x",
			engineSemver.Major(), engineSemver.Minor(),
			fileSemver.Major(), fileSemver.Minor())
	}

	return nil
}
