// Package config provides configuration loading and defaults for gcca-parser.
package config

// DefaultArchiveRoot is the default location of the competition archive.
const DefaultArchiveRoot = "./coding-competitions-archive"

// DefaultOutput is where the index is written by default.
const DefaultOutput = "./competitionStructure.json"

// DefaultFormat is the default index encoding.
const DefaultFormat = "json"

// DefaultFamilies are the metadata-driven competition families.
var DefaultFamilies = []string{"codejam", "codejam_to_io", "farewell", "kickstart"}

// DefaultHashCodeDir is the folder of the hash code family under the archive root.
const DefaultHashCodeDir = "hashcode"

// DefaultYear is used for rounds whose year folder is not a number.
const DefaultYear = 2023

// DefaultConcurrency bounds parallel filesystem reads.
const DefaultConcurrency = 8

// DefaultConfigDir is the default location for gcca-parser configuration.
const DefaultConfigDir = "~/.config/gcca-parser"

// DefaultDBName is the filename for the run history database.
const DefaultDBName = "history.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultHistory holds the default run history settings.
var DefaultHistory = History{
	Enabled: false,
	DB:      DefaultConfigDir + "/" + DefaultDBName,
}
