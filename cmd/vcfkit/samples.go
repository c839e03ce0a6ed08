package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vcfkit/vcfkit/internal/sample"
	"github.com/vcfkit/vcfkit/internal/textfile"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

var (
	samplesInput  string
	samplesOutput string
	samplesNames  []string
	samplesFile   string
	renameMapFile string
)

func init() {
	rootCmd.AddCommand(extractSamplesCmd)
	rootCmd.AddCommand(removeSamplesCmd)
	rootCmd.AddCommand(renameSamplesCmd)
	rootCmd.AddCommand(listSamplesCmd)

	for _, cmd := range []*cobra.Command{extractSamplesCmd, removeSamplesCmd, renameSamplesCmd} {
		cmd.Flags().StringVarP(&samplesInput, "input", "i", "-", "Input VCF file (\"-\" for stdin)")
		cmd.Flags().StringVarP(&samplesOutput, "output", "o", "-", "Output VCF file (\"-\" for stdout, .gz for BGZF)")
		cmd.Flags().SortFlags = false
	}
	for _, cmd := range []*cobra.Command{extractSamplesCmd, removeSamplesCmd} {
		cmd.Flags().StringSliceVarP(&samplesNames, "sample", "s", nil, "Sample name (repeatable)")
		cmd.Flags().StringVar(&samplesFile, "samples-file", "", "File with one sample name per line")
	}
	renameSamplesCmd.Flags().StringVarP(&renameMapFile, "map", "m", "", "Two-column old<TAB>new rename map (required)")
	renameSamplesCmd.MarkFlagRequired("map")

	listSamplesCmd.Flags().StringVarP(&samplesInput, "input", "i", "-", "Input VCF file (\"-\" for stdin)")
}

// sampleArgs folds --sample flags and --samples-file into one list.
func sampleArgs() ([]string, error) {
	names := append([]string(nil), samplesNames...)
	if samplesFile != "" {
		fromFile, err := textfile.ReadLines(samplesFile)
		if err != nil {
			return nil, err
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no samples given: use --sample or --samples-file")
	}
	return names, nil
}

// projectSamples runs a keep/remove projection pipeline.
func projectSamples(build func(*vcf.Header, []string) (*sample.Projection, error)) error {
	names, err := sampleArgs()
	if err != nil {
		return err
	}

	var p *sample.Projection
	return pipeline(samplesInput, samplesOutput,
		func(h *vcf.Header) (*vcf.Header, error) {
			if p, err = build(h, names); err != nil {
				return nil, err
			}
			return p.Header(), nil
		},
		func(r vcf.RecordReader) (vcf.RecordReader, error) {
			return p.Stream(r), nil
		})
}

var extractSamplesCmd = &cobra.Command{
	Use:   "extract-samples",
	Short: "Keep only the named sample columns",
	Long: `Keep only the named sample columns, preserving their relative order
from the header. Referencing a sample absent from the header is an error.

Example usage:

	vcfkit extract-samples -i in.vcf -s NA001 -s NA002 -o out.vcf
	vcfkit extract-samples -i in.vcf --samples-file keep.txt -o out.vcf
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectSamples(sample.Keep)
	},
}

var removeSamplesCmd = &cobra.Command{
	Use:   "remove-samples",
	Short: "Drop the named sample columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectSamples(sample.Remove)
	},
}

var renameSamplesCmd = &cobra.Command{
	Use:   "rename-samples",
	Short: "Rename samples per a two-column old/new map",
	Long: `Rename samples according to a two-column old<TAB>new map file.
Old names absent from the header pass through unchanged; a rename that
collides with an existing sample name is an error.

Example usage:

	vcfkit rename-samples -i in.vcf -m rename.txt -o out.vcf
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := textfile.ReadPairs(renameMapFile)
		if err != nil {
			return err
		}
		return pipeline(samplesInput, samplesOutput,
			func(h *vcf.Header) (*vcf.Header, error) {
				return sample.Rename(h, pairs)
			},
			nil)
	},
}

var listSamplesCmd = &cobra.Command{
	Use:   "list-samples",
	Short: "Print the sample names of a VCF file, one per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := vcf.NewReader(samplesInput)
		if err != nil {
			return err
		}
		defer r.Close()

		for _, name := range r.Header().Samples {
			fmt.Fprintln(os.Stdout, name)
		}
		return nil
	},
}
