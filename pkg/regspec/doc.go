// Package regspec parses YAML register maps.
//
// A register map lists the registers of one device: name, address, access
// kind, width in bits, reset value and optional named bit fields. Both
// cmd/regbind (map mode) and cmd/regshell load maps through this package.
//
//	device: demo-sensor
//	package: sensor
//	addressType: uint8
//	registers:
//	  - name: Config
//	    addr: 0x01
//	    access: rw
//	    width: 16
//	    fields:
//	      - {name: enable, offset: 0, bits: 1}
//	      - {name: reserved, offset: 8, bits: 8, reserved: true}
package regspec
