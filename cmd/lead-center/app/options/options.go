// Package options aggregates the lead center configuration options.
package options

import (
	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	dbopts "github.com/kart-io/lead-center/pkg/options/db"
	httpopts "github.com/kart-io/lead-center/pkg/options/http"
	jwtopts "github.com/kart-io/lead-center/pkg/options/jwt"
	logopts "github.com/kart-io/lead-center/pkg/options/logger"
	redisopts "github.com/kart-io/lead-center/pkg/options/redis"
)

// Options contains the full configuration of the lead center.
type Options struct {
	Log   *logopts.Options   `json:"log" mapstructure:"log"`
	DB    *dbopts.Options    `json:"db" mapstructure:"db"`
	Redis *redisopts.Options `json:"redis" mapstructure:"redis"`
	JWT   *jwtopts.Options   `json:"jwt" mapstructure:"jwt"`
	HTTP  *httpopts.Options  `json:"http" mapstructure:"http"`

	// LegacyBareShow keeps the historical behavior where a bare "show"
	// grant on the leads page exposes every lead.
	LegacyBareShow bool `json:"legacy-bare-show" mapstructure:"legacy-bare-show"`
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		Log:            logopts.NewOptions(),
		DB:             dbopts.NewOptions(),
		Redis:          redisopts.NewOptions(),
		JWT:            jwtopts.NewOptions(),
		HTTP:           httpopts.NewOptions(),
		LegacyBareShow: true,
	}
}

// Complete fills in defaults for unset fields.
func (o *Options) Complete() error {
	return nil
}

// Validate checks all option sections.
func (o *Options) Validate() error {
	var errs []error
	errs = append(errs, o.Log.Validate())
	errs = append(errs, o.DB.Validate())
	errs = append(errs, o.Redis.Validate())
	errs = append(errs, o.JWT.Validate())
	errs = append(errs, o.HTTP.Validate())
	return utilerrors.NewAggregate(errs)
}

// AddFlags registers all option flags.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Log.AddFlags(fs)
	o.DB.AddFlags(fs)
	o.Redis.AddFlags(fs)
	o.JWT.AddFlags(fs)
	o.HTTP.AddFlags(fs)
	fs.BoolVar(&o.LegacyBareShow, "legacy-bare-show", o.LegacyBareShow,
		"Keep the historical behavior where a bare show grant exposes every lead")
}
