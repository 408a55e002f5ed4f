package common

import "fmt"

// FileHeader returns the generated-file banner for one artifact. fileName
// and brief fill the doc block the engine uses across its sources.
func FileHeader(fileName, brief string) string {
	return fmt.Sprintf(`/**
 * @file    %s
 * @brief   %s
 * @details Generated by EHT (Engine Header Tool) %s - DO NOT EDIT
 */
`, fileName, brief, GetVersion())
}
