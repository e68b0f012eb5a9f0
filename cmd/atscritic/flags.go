package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bind ties a flag to a config key. Flags are defined in code, so a lookup
// miss is a programming error.
func bind(v *viper.Viper, key string, f *pflag.Flag) {
	if f == nil {
		panic("flag for config key " + key + " not defined")
	}
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}
