package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcfkit/vcfkit/internal/qual"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

var (
	filterInput      string
	filterOutput     string
	filterMinMAF     float64
	filterMaxMissing float64
)

func init() {
	rootCmd.AddCommand(filterMAFCmd)

	filterMAFCmd.Flags().StringVarP(&filterInput, "input", "i", "-", "Input VCF file (\"-\" for stdin)")
	filterMAFCmd.Flags().StringVarP(&filterOutput, "output", "o", "-", "Output VCF file (\"-\" for stdout, .gz for BGZF)")
	filterMAFCmd.Flags().Float64Var(&filterMinMAF, "min-maf", 0, "Minimum minor allele frequency over called alleles")
	filterMAFCmd.Flags().Float64Var(&filterMaxMissing, "max-missing", 1, "Maximum fraction of samples with an uncalled genotype")

	filterMAFCmd.Flags().SortFlags = false
}

var filterMAFCmd = &cobra.Command{
	Use:   "filter-maf",
	Short: "Drop sites by missingness rate and minor allele frequency",
	Long: `Drop sites whose genotype missingness exceeds --max-missing or whose
minor allele frequency falls below --min-maf. The frequency is computed
over called alleles only; at multi-allelic sites the minimum
non-reference allele frequency is used.

Example usage:

	vcfkit filter-maf -i in.vcf.gz --min-maf 0.05 --max-missing 0.1 -o out.vcf.gz
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if filterMinMAF < 0 || filterMinMAF > 0.5 {
			return fmt.Errorf("--min-maf must be in [0, 0.5], got %g", filterMinMAF)
		}
		if filterMaxMissing < 0 || filterMaxMissing > 1 {
			return fmt.Errorf("--max-missing must be in [0, 1], got %g", filterMaxMissing)
		}

		t := qual.Thresholds{MaxMissing: filterMaxMissing, MinMAF: filterMinMAF}
		return pipeline(filterInput, filterOutput, nil,
			func(r vcf.RecordReader) (vcf.RecordReader, error) {
				return qual.Filter(r, t), nil
			})
	},
}
