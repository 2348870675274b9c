package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"amberfy/internal/amber"
	"amberfy/internal/driver"
	"amberfy/internal/pipeline"
)

func main() {
	jobJSON := "internal/amber/testdata/compute/variant/variant.json"
	out := filepath.Join(os.TempDir(), "debug_convert.amber")
	req := driver.Request{
		Test: amber.FileTest{
			Variant: amber.JobFile{
				NamePrefix:      "variant",
				AsmSpirvJobJSON: jobJSON,
				ProcessingInfo:  "no processing",
			},
		},
		Output: out,
	}
	res, err := driver.Convert(context.Background(), req)
	if err != nil {
		fmt.Printf("convert error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(res.Script)
	for _, stage := range []pipeline.Stage{pipeline.StageLoad, pipeline.StageAssemble, pipeline.StageWrite} {
		if res.Timings.Has(stage) {
			fmt.Printf("%s: %s\n", stage, res.Timings.Duration(stage).Round(time.Microsecond))
		}
	}
	fmt.Printf("wrote %s\n", res.Output)
}
