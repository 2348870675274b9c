package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"amberfy/internal/amber"
)

// addScriptFlags registers the flags that shape the generated script.
// Shared by convert and batch.
func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().String("copyright-file", "", "file whose text becomes the script's copyright header")
	cmd.Flags().Bool("generated-comment", false, "add the \"Generated.\" comment")
	cmd.Flags().Bool("graphicsfuzz-comment", false, "add the GraphicsFuzz attribution comment")
	cmd.Flags().String("short-description", "", "one-line test description")
	cmd.Flags().String("comment-file", "", "file whose text becomes a free-form comment block")
	cmd.Flags().Bool("default-fence-timeout", false, "keep the runner's default fence timeout")
	cmd.Flags().String("extra-commands-file", "", "file appended verbatim after the last directive")
	cmd.Flags().StringSlice("spirv-opt-args", nil, "spirv-opt arguments the shaders were optimized with")
	cmd.Flags().String("spirv-opt-hash", "", "spirv-opt commit hash to record")
}

// buildScriptSettings resolves the script settings from flags and the
// optional manifest. An explicitly set flag wins over the manifest.
func buildScriptSettings(cmd *cobra.Command, manifest *projectManifest) (amber.Settings, string, error) {
	var settings amber.Settings

	var script scriptConfig
	var spirvOpt spirvOptConfig
	if manifest != nil {
		script = manifest.Config.Script
		spirvOpt = manifest.Config.SpirvOpt
	}

	shortDescription, err := cmd.Flags().GetString("short-description")
	if err != nil {
		return settings, "", err
	}
	if !cmd.Flags().Changed("short-description") && script.ShortDescription != "" {
		shortDescription = script.ShortDescription
	}
	settings.ShortDescription = shortDescription

	copyrightFile, err := cmd.Flags().GetString("copyright-file")
	if err != nil {
		return settings, "", err
	}
	if !cmd.Flags().Changed("copyright-file") && script.CopyrightFile != "" {
		copyrightFile = manifest.resolveManifestPath(script.CopyrightFile)
	}
	settings.CopyrightHeaderText, err = readOptionalTextFile(copyrightFile)
	if err != nil {
		return settings, "", err
	}

	commentFile, err := cmd.Flags().GetString("comment-file")
	if err != nil {
		return settings, "", err
	}
	if !cmd.Flags().Changed("comment-file") && script.CommentFile != "" {
		commentFile = manifest.resolveManifestPath(script.CommentFile)
	}
	settings.CommentText, err = readOptionalTextFile(commentFile)
	if err != nil {
		return settings, "", err
	}

	extraCommandsFile, err := cmd.Flags().GetString("extra-commands-file")
	if err != nil {
		return settings, "", err
	}
	if !cmd.Flags().Changed("extra-commands-file") && script.ExtraCommandsFile != "" {
		extraCommandsFile = manifest.resolveManifestPath(script.ExtraCommandsFile)
	}
	settings.ExtraCommands, err = readOptionalTextFile(extraCommandsFile)
	if err != nil {
		return settings, "", err
	}

	settings.AddGeneratedComment, err = resolveBoolFlag(cmd, "generated-comment", script.GeneratedComment)
	if err != nil {
		return settings, "", err
	}
	settings.AddGraphicsFuzzComment, err = resolveBoolFlag(cmd, "graphicsfuzz-comment", script.GraphicsFuzzComment)
	if err != nil {
		return settings, "", err
	}
	settings.UseDefaultFenceTimeout, err = resolveBoolFlag(cmd, "default-fence-timeout", script.DefaultFenceTimeout)
	if err != nil {
		return settings, "", err
	}

	settings.SpirvOptArgs, err = cmd.Flags().GetStringSlice("spirv-opt-args")
	if err != nil {
		return settings, "", err
	}
	if !cmd.Flags().Changed("spirv-opt-args") && len(spirvOpt.Args) > 0 {
		settings.SpirvOptArgs = spirvOpt.Args
	}

	settings.SpirvOptHash, err = cmd.Flags().GetString("spirv-opt-hash")
	if err != nil {
		return settings, "", err
	}
	if !cmd.Flags().Changed("spirv-opt-hash") && spirvOpt.Hash != "" {
		settings.SpirvOptHash = spirvOpt.Hash
	}

	return settings, processingInfo(settings.SpirvOptArgs), nil
}

// processingInfo describes how the assembly was produced, for the job
// metadata.
func processingInfo(spirvOptArgs []string) string {
	if len(spirvOptArgs) == 0 {
		return "no processing"
	}
	return "optimized with spirv-opt " + strings.Join(spirvOptArgs, " ")
}

// resolveBoolFlag applies the manifest value only when the user left the
// flag untouched.
func resolveBoolFlag(cmd *cobra.Command, name string, manifestValue *bool) (bool, error) {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, err
	}
	if !cmd.Flags().Changed(name) && manifestValue != nil {
		return *manifestValue, nil
	}
	return value, nil
}

// readOptionalTextFile reads path, treating "" as absent.
func readOptionalTextFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(data), nil
}
