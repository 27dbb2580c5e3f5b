// Readwell - text contrast auditing and repair
//
// Readwell audits web page text against WCAG contrast targets and repairs
// failing foreground colours with the smallest perceptible shift.
package main

import (
	"github.com/readwell/readwell/internal/cli"
)

func main() {
	cli.Execute()
}
