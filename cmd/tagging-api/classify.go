package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryannaik/tagging-api/internal/tagging"
)

var labelsFlag bool

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Print the tags for a transcript or a list of labels",
	Long: `Classify runs the keyword tagger locally and prints the tags as JSON.
By default the arguments are joined into one transcript. With --labels each
argument is treated as a separate image label.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&labelsFlag, "labels", false, "Treat each argument as an image label")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	var tags []tagging.Tag
	if labelsFlag {
		tags = tagging.ClassifyLabels(args)
	} else {
		tags = tagging.ClassifyText(strings.Join(args, " "))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(tags)
}
