package cli

import "fmt"

// ShowHelp displays the help message and exits.
func ShowHelp() {
	fmt.Print(`devicecollector: collect device information from the people using them
Usage:
  devicecollector [command] [options]

Commands:
  collect (default)  Open the device information form, or submit from flags
  report             Show collected records with summary counts
  export             Write all records to device-data-YYYY-MM-DD.json
  device-id          Print the device ID of this machine
  config             Print the effective configuration with secrets redacted
  version            Print the build version

Options for every command:
  -config string      path to config.json (default: user config dir)

Options for collect:
  -user-name string   name of the person using the device
  -department string  department of the person using the device
  -device-type string device type (desktop, laptop, tablet, phone, other)
  -phone string       contact phone number
  -location string    office or desk location
  -purpose string     what the device is used for
  -non-interactive    submit from flags without opening the form

Options for report:
  -follow             redraw whenever the records change
  -geoip string       MaxMind country database for an IP country breakdown
  -html string        also write an HTML report to this path

Options for export:
  -out string         file, directory or "-" for stdout

Options for device-id:
  -copy               copy the device ID to the clipboard

Environment:
  CONFIG_SOURCE       "file" (default) or "env"
  CONFIG_ENV_PREFIX   prefix for env config (default "DEVICECOLLECTOR_")

Examples:
  # Fill in the form
  devicecollector

  # Submit without a terminal UI
  devicecollector collect -non-interactive -user-name "Ada" -department IT -device-type laptop

  # Watch submissions arrive in a shared NATS bucket
  DEVICECOLLECTOR_STORAGE_BACKEND=nats CONFIG_SOURCE=env devicecollector report -follow

  # Export to the current directory
  devicecollector export -out .
`)
}
