package config

import (
	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/render"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
)

// Resolve parses the colour and loads the icon. ok is false for a disabled
// action.
func (a Action) Resolve(iconSize int) (cfg swipe.ActionConfig, ok bool, err error) {
	if !a.Enabled {
		return swipe.ActionConfig{}, false, nil
	}
	col, err := render.ParseColor(a.Color)
	if err != nil {
		return swipe.ActionConfig{}, false, err
	}
	cfg = swipe.ActionConfig{
		Effect:   effect.Config{Color: col},
		Deleting: a.Deleting,
	}
	if a.Icon != "" {
		icon, err := render.LoadIcon(a.Icon, iconSize)
		if err != nil {
			return swipe.ActionConfig{}, false, err
		}
		cfg.Effect.Icon = icon
	}
	return cfg, true, nil
}

// Action returns the configured action for dir.
func (c *Config) Action(dir effect.Direction) Action {
	if dir == effect.ToLeft {
		return c.Actions.Left
	}
	return c.Actions.Right
}

// Delegate resolves both actions once and returns a delegate offering them.
// triggered, when set, is called for every committed swipe.
func (c *Config) Delegate(iconSize int, triggered func(effect.Direction)) (swipe.Delegate, error) {
	resolved := make(map[effect.Direction]swipe.ActionConfig, 2)
	for _, dir := range []effect.Direction{effect.ToRight, effect.ToLeft} {
		cfg, ok, err := c.Action(dir).Resolve(iconSize)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "[actions.%s]", dir)
		}
		if ok {
			resolved[dir] = cfg
		}
	}
	return swipe.DelegateFuncs{
		Config: func(dir effect.Direction) (swipe.ActionConfig, bool) {
			cfg, ok := resolved[dir]
			return cfg, ok
		},
		Triggered: triggered,
	}, nil
}
