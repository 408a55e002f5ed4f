package cmd

import (
	"fmt"

	"github.com/esengine/eht/internal/common"
)

// VersionCommand prints the tool version and exits.
type VersionCommand struct{}

func (v *VersionCommand) Run() error {
	fmt.Println("eht " + common.GetVersion())
	return nil
}
