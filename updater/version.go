package updater

import (
	"context"
	"fmt"

	"github.com/coreos/go-semver/semver"
	"go.uber.org/zap"

	"github.com/moffa90/go-swupdate/protocol"
)

// VersionRange bounds the versions the engine accepts for subsequent updates.
// Empty fields are sent as empty strings.
type VersionRange struct {
	Minimum string
	Maximum string
	Current string
}

// Validate checks the field lengths and, when both bounds are semantic
// versions, that Minimum does not exceed Maximum.
func (r VersionRange) Validate() error {
	if _, err := protocol.NewVersionsMessage(r.Minimum, r.Maximum, r.Current); err != nil {
		return err
	}

	if r.Minimum == "" || r.Maximum == "" {
		return nil
	}
	lo, err := semver.NewVersion(r.Minimum)
	if err != nil {
		return nil
	}
	hi, err := semver.NewVersion(r.Maximum)
	if err != nil {
		return nil
	}
	if hi.LessThan(*lo) {
		return &VersionRangeError{Minimum: r.Minimum, Maximum: r.Maximum, Reason: "minimum is greater than maximum"}
	}
	return nil
}

// SetVersionRange sends a version range to the engine.
//
// Example:
//
//	err := u.SetVersionRange(ctx, updater.VersionRange{
//	    Minimum: "1.0.0",
//	    Maximum: "2.0.0",
//	    Current: "1.4.2",
//	})
func (u *Updater) SetVersionRange(ctx context.Context, r VersionRange) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("set version range: %w", err)
	}

	setter, ok := u.engine.(VersionRangeSetter)
	if !ok {
		return ErrUnsupported
	}
	if err := r.Validate(); err != nil {
		return err
	}

	if rc := setter.SetVersionRange(r.Minimum, r.Maximum, r.Current); rc < 0 {
		u.config.Logger.Error("engine rejected version range", zap.Int("code", rc))
		return &CommandError{Operation: "set version range", Code: rc}
	}

	u.config.Logger.Info("version range set",
		zap.String("minimum", r.Minimum),
		zap.String("maximum", r.Maximum),
		zap.String("current", r.Current),
	)
	return nil
}
