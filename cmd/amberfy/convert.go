package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"amberfy/internal/amber"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] VARIANT_JSON",
	Short: "Convert one shader job into an AmberScript file",
	Long: `Convert a single shader job into an AmberScript file. The job JSON names
the uniforms; the disassembled SPIR-V stages are found next to it by naming
convention (NAME.frag.asm, NAME.vert.asm, NAME.comp.asm). With --reference
the output renders both jobs and compares their framebuffers.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	addScriptFlags(convertCmd)
	convertCmd.Flags().String("reference", "", "reference job JSON to render alongside the variant")
	convertCmd.Flags().String("source-json", "", "job JSON whose GLSL stages are embedded as comments")
	convertCmd.Flags().String("reference-source-json", "", "GLSL source job JSON for the reference")
	convertCmd.Flags().StringP("output", "o", "", "output path (default: variant stem + \".amber\")")
}

func runConvert(cmd *cobra.Command, args []string) error {
	variantJSON := args[0]

	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	settings, processing, err := buildScriptSettings(cmd, manifest)
	if err != nil {
		return err
	}

	referenceJSON, err := cmd.Flags().GetString("reference")
	if err != nil {
		return err
	}
	sourceJSON, err := cmd.Flags().GetString("source-json")
	if err != nil {
		return err
	}
	referenceSourceJSON, err := cmd.Flags().GetString("reference-source-json")
	if err != nil {
		return err
	}
	if referenceSourceJSON != "" && referenceJSON == "" {
		return fmt.Errorf("--reference-source-json requires --reference")
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(variantJSON, ".json") + ".amber"
	}

	test := amber.FileTest{
		Variant: amber.JobFile{
			NamePrefix:      "variant",
			AsmSpirvJobJSON: variantJSON,
			SourceJSON:      sourceJSON,
			ProcessingInfo:  processing,
		},
	}
	if referenceJSON != "" {
		test.Reference = &amber.JobFile{
			NamePrefix:      "reference",
			AsmSpirvJobJSON: referenceJSON,
			SourceJSON:      referenceSourceJSON,
			ProcessingInfo:  processing,
		}
	}

	written, err := amber.WriteScript(ctx, test, output, settings)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", written)
	return nil
}
