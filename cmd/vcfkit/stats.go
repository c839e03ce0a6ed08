package main

import (
	"github.com/spf13/cobra"

	"github.com/vcfkit/vcfkit/internal/stats"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

var (
	statsInput string
	statsPlot  bool
	statsTSV   bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsInput, "input", "i", "-", "Input VCF file (\"-\" for stdin)")
	statsCmd.Flags().BoolVar(&statsPlot, "plot", false, "Draw the minor allele frequency spectrum as a terminal histogram")
	statsCmd.Flags().BoolVar(&statsTSV, "per-chrom-tsv", false, "Print only per-chromosome record counts as TSV")

	statsCmd.Flags().SortFlags = false
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize a VCF file in one pass",
	Long: `Summarize a VCF file: record and sample counts, SNV/indel breakdown,
ts/tv ratio, QUAL distribution, mean genotype missingness, and
per-chromosome record counts.

Example usage:

	vcfkit stats -i in.vcf.gz
	vcfkit stats -i in.vcf.gz --plot
	vcfkit stats -i in.vcf.gz --per-chrom-tsv > counts.tsv
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := vcf.NewReader(statsInput)
		if err != nil {
			return err
		}
		defer in.Close()

		summary, err := stats.Collect(in.Header(), in)
		if err != nil {
			return err
		}
		if statsTSV {
			return summary.RenderPerChromTSV(cmd.OutOrStdout())
		}
		return summary.Render(cmd.OutOrStdout(), statsPlot)
	},
}
