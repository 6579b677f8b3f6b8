// Command pemm converts the Macomber handlist of Ethiopian Marian miracle
// stories into the CSV tables of the PEMM spreadsheet.
//
//	pemm convert -f data/macomber.txt -i data/incipits.csv
//	pemm collections
//	pemm incipit 1 CRA 53
//	pemm runs --limit 5
//	pemm config init
package main
