// Ponyini reads, repairs and converts desktop pony pack definitions.
//
// A pony pack is a directory with one sub-directory per pony, each holding a
// pony.ini together with its images and sounds. ponyini rewrites every
// pony.ini into a canonical _pony.ini with file names made safe for the web,
// then converts it into the config.json a browser runtime loads.
//
// Usage:
//
//	# Repair and convert every pony below ./ponies
//	ponyini run
//
//	# Use a different pack and configuration
//	ponyini run --root /srv/ponies --config ponyini.yaml
//
//	# Check a single file
//	ponyini lint ponies/Pip/pony.ini
//
//	# Print the configuration of a single file
//	ponyini convert ponies/Pip/pony.ini
//
//	# Reconvert on every change and serve metrics
//	ponyini watch --metrics-addr :9090
//
//	# Inspect recorded conversions
//	ponyini catalog list
package main

func main() {
	Execute()
}
