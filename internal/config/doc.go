// Package config loads wordassoc's TOML configuration.
//
// Lookup order is an explicit path, then ~/.config/wordassoc/config.toml, then
// ./wordassoc.toml; when none exists the defaults apply. WORDASSOC_WORKSPACE,
// WORDASSOC_LOG_LEVEL and WORDASSOC_WORKERS override the file.
package config
