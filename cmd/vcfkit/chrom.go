package main

import (
	"github.com/spf13/cobra"

	"github.com/vcfkit/vcfkit/internal/chrom"
	"github.com/vcfkit/vcfkit/internal/textfile"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

var (
	chromInput   string
	chromOutput  string
	chromMapFile string
)

func init() {
	rootCmd.AddCommand(renameChromsCmd)

	renameChromsCmd.Flags().StringVarP(&chromInput, "input", "i", "-", "Input VCF file (\"-\" for stdin)")
	renameChromsCmd.Flags().StringVarP(&chromOutput, "output", "o", "-", "Output VCF file (\"-\" for stdout, .gz for BGZF)")
	renameChromsCmd.Flags().StringVarP(&chromMapFile, "map", "m", "", "Two-column old<TAB>new chromosome map (required)")
	renameChromsCmd.MarkFlagRequired("map")

	renameChromsCmd.Flags().SortFlags = false
}

var renameChromsCmd = &cobra.Command{
	Use:   "rename-chroms",
	Short: "Rename chromosomes per a two-column old/new map",
	Long: `Rename chromosomes in the header and every record according to a
two-column old<TAB>new map file. Map entries whose old name matches no
contig declared in the header are skipped with a warning rather than
aborting, since naming convention mismatches ("chr1" vs "Chr01") are
common between files.

Example usage:

	vcfkit rename-chroms -i ensembl.vcf -m ensembl_to_ucsc.txt -o ucsc.vcf
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := textfile.ReadPairs(chromMapFile)
		if err != nil {
			return err
		}

		var rn *chrom.Renamer
		return pipeline(chromInput, chromOutput,
			func(h *vcf.Header) (*vcf.Header, error) {
				rn = chrom.NewRenamer(h, pairs, logger)
				return rn.Header(h), nil
			},
			func(r vcf.RecordReader) (vcf.RecordReader, error) {
				return rn.Stream(r), nil
			})
	},
}
