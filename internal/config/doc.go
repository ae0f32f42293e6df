// Package config provides startup configuration for the pixel editor.
//
// Configuration is built in layers, each overriding the one below:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by the CLI)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← PIXELSTORM_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A TOML file looks like:
//
//	[canvas]
//	width = 60
//	height = 30
//	background = "#f0f0f0"
//	cellSize = 10
//
//	[editor]
//	tool = "draw"
//	color = "#000000"
//	tools = ["draw", "fill", "rectangle", "pick"]
//
//	[palette]
//	colors = ["#000000", "#ffffff", "#ff0000"]
//
//	[[scripts]]
//	name = "spray"
//	path = "tools/spray.lua"
//
//	[logging]
//	level = "info"
//	file = "pixelstorm.log"
//
// Script paths are relative to the directory of the config file.
package config
