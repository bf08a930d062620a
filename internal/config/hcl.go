// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclFile is the HCL schema of a config file. Every attribute and block is
// optional; pointers tell "absent" from "zero" so absent keys keep defaults.
type hclFile struct {
	Track     *string       `hcl:"track,optional"`
	Search    *hclSearch    `hcl:"search,block"`
	Output    *hclOutput    `hcl:"output,block"`
	Visualize *hclVisualize `hcl:"visualize,block"`
	Logging   *hclLogging   `hcl:"logging,block"`
}

type hclSearch struct {
	Depth        *int    `hcl:"depth,optional"`
	Model        *string `hcl:"model,optional"`
	GrassCost    *int    `hcl:"grass_cost,optional"`
	MaxSpeed     *int    `hcl:"max_speed,optional"`
	Workers      *int    `hcl:"workers,optional"`
	Prune        *bool   `hcl:"prune,optional"`
	AllowPartial *bool   `hcl:"allow_partial,optional"`
}

type hclOutput struct {
	Path *string `hcl:"path,optional"`
}

type hclVisualize struct {
	Enabled     *bool   `hcl:"enabled,optional"`
	OverlayPath *string `hcl:"overlay_path,optional"`
	Command     *string `hcl:"command,optional"`
	Output      *string `hcl:"output,optional"`
	Timeout     *string `hcl:"timeout,optional"`
}

type hclLogging struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

func decodeHCL(path string, data []byte, cfg *Config) error {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return diags
	}
	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return diags
	}

	set(&cfg.Track, f.Track)
	if s := f.Search; s != nil {
		set(&cfg.Search.Depth, s.Depth)
		set(&cfg.Search.Model, s.Model)
		set(&cfg.Search.GrassCost, s.GrassCost)
		set(&cfg.Search.MaxSpeed, s.MaxSpeed)
		set(&cfg.Search.Workers, s.Workers)
		set(&cfg.Search.Prune, s.Prune)
		set(&cfg.Search.AllowPartial, s.AllowPartial)
	}
	if o := f.Output; o != nil {
		set(&cfg.Output.Path, o.Path)
	}
	if v := f.Visualize; v != nil {
		set(&cfg.Visualize.Enabled, v.Enabled)
		set(&cfg.Visualize.OverlayPath, v.OverlayPath)
		set(&cfg.Visualize.Command, v.Command)
		set(&cfg.Visualize.Output, v.Output)
		if v.Timeout != nil {
			d, err := time.ParseDuration(*v.Timeout)
			if err != nil {
				return fmt.Errorf("visualize.timeout: %w", err)
			}
			cfg.Visualize.Timeout = d
		}
	}
	if l := f.Logging; l != nil {
		set(&cfg.Logging.Level, l.Level)
		set(&cfg.Logging.Format, l.Format)
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
