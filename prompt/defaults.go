package prompt

import _ "embed"

// defaultVersion is the pack seeded into empty prompt directories.
const defaultVersion = "v1"

//go:embed defaults/v1.json
var defaultPack []byte
