package strategy

import (
	"gopkg.in/yaml.v3"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// Names returns the known strategy variant names.
func Names() []string {
	return []string{
		EmaRsiMeanReversionName,
		BollingerRsiMeanReversionName,
		MacdAdxTrendFollowingName,
		EmaAdxTrendFollowingName,
	}
}

// New builds the named strategy variant. rawParams is an optional YAML
// document overriding the variant's default parameters; a nil or empty
// document keeps the defaults.
func New(name string, rawParams []byte) (Strategy, error) {
	switch name {
	case EmaRsiMeanReversionName:
		params := DefaultEmaRsiParams()
		if err := unmarshalParams(rawParams, &params); err != nil {
			return nil, err
		}
		return NewEmaRsiMeanReversion(params)

	case BollingerRsiMeanReversionName:
		params := DefaultBollingerRsiParams()
		if err := unmarshalParams(rawParams, &params); err != nil {
			return nil, err
		}
		return NewBollingerRsiMeanReversion(params)

	case MacdAdxTrendFollowingName:
		params := DefaultMacdAdxParams()
		if err := unmarshalParams(rawParams, &params); err != nil {
			return nil, err
		}
		return NewMacdAdxTrendFollowing(params)

	case EmaAdxTrendFollowingName:
		params := DefaultEmaAdxParams()
		if err := unmarshalParams(rawParams, &params); err != nil {
			return nil, err
		}
		return NewEmaAdxTrendFollowing(params)

	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unknown strategy %q", name)
	}
}

func unmarshalParams(rawParams []byte, out any) error {
	if len(rawParams) == 0 {
		return nil
	}

	if err := yaml.Unmarshal(rawParams, out); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "cannot parse strategy parameters", err)
	}

	return nil
}
