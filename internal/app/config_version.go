package app

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// SupportedConfigVersions is the range of settings file versions this
// build reads.
const SupportedConfigVersions = ">=1.0,<2.0"

func checkConfigVersion(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	version, err := pep440.Parse(trimmed)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid config version: %s", value)).
			WithCause(err)
	}
	supported, err := pep440.NewSpecifiers(SupportedConfigVersions)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("invalid supported config versions").
			WithCause(err)
	}
	if !supported.Check(version) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("unsupported config version %s (supported %s)", trimmed, SupportedConfigVersions))
	}
	return nil
}
