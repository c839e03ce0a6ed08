package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcfkit/vcfkit/internal/region"
	"github.com/vcfkit/vcfkit/internal/vcf"
)

var (
	regionInput     string
	regionOutput    string
	regionStrings   []string
	regionFile      string
	regionSitesFile string
)

func init() {
	rootCmd.AddCommand(extractRegionCmd)

	extractRegionCmd.Flags().StringVarP(&regionInput, "input", "i", "-", "Input VCF file (\"-\" for stdin)")
	extractRegionCmd.Flags().StringVarP(&regionOutput, "output", "o", "-", "Output VCF file (\"-\" for stdout, .gz for BGZF)")
	extractRegionCmd.Flags().StringSliceVarP(&regionStrings, "region", "r", nil, "Region as chrom, chrom:pos or chrom:start-end (repeatable)")
	extractRegionCmd.Flags().StringVar(&regionFile, "regions-file", "", "File of regions, one per line or BED-like chrom<TAB>start<TAB>end")
	extractRegionCmd.Flags().StringVar(&regionSitesFile, "positions-file", "", "File of sites, chrom<TAB>pos per line")

	extractRegionCmd.Flags().SortFlags = false
}

var extractRegionCmd = &cobra.Command{
	Use:   "extract-region",
	Short: "Keep records whose position falls inside a set of intervals",
	Long: `Keep records whose (chrom, pos) lies inside any of the supplied
intervals. Multiple intervals form a union. Chromosome names are matched
exactly: an interval on "chr1" matches nothing in a file that calls the
chromosome "1". Such intervals are reported as warnings, not errors.

Example usage:

	vcfkit extract-region -i in.vcf.gz -r chr1:1000000-2000000 -o out.vcf.gz
	vcfkit extract-region -i in.vcf --regions-file targets.bed -o out.vcf
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set := region.NewSet()
		for _, s := range regionStrings {
			iv, err := region.Parse(s)
			if err != nil {
				return err
			}
			set.Add(iv)
		}
		if regionFile != "" {
			fromFile, err := region.ReadFile(regionFile)
			if err != nil {
				return err
			}
			set.Union(fromFile)
		}
		if regionSitesFile != "" {
			sites, err := region.ReadPositions(regionSitesFile)
			if err != nil {
				return err
			}
			set.Union(sites)
		}
		if set.Empty() {
			return fmt.Errorf("no regions given: use --region, --regions-file or --positions-file")
		}

		return pipeline(regionInput, regionOutput,
			func(h *vcf.Header) (*vcf.Header, error) {
				region.WarnUnknownChroms(h, set, "region arguments", logger)
				return h, nil
			},
			func(r vcf.RecordReader) (vcf.RecordReader, error) {
				return region.Filter(r, set), nil
			})
	},
}
