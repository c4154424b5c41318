// Package cmd - calculate command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"barodeal/core/fee"
	"barodeal/core/output"
	"barodeal/core/types"
	"barodeal/internal/app"
	"barodeal/internal/config"
	"barodeal/internal/logging"
)

var (
	calcRegion   string
	calcDeal     string
	calcProperty string
	calcPrice    string
	calcDeposit  string
	calcRent     string
	calcRate     string
	outputFormat string
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate the brokerage fee for a deal",
	Long: `Calculate the statutory brokerage fee, VAT and the discounted fee.

Deal types: sale (매매), lease-deposit (전세), lease-with-rent (월세).
Property types: house (주택), officetel (오피스텔), pre-sale-right (분양권), other (기타).

Examples:
  barodeal calculate --deal sale --property house --price 90,000
  barodeal calculate --deal 전세 --property 오피스텔 --price 30,000
  barodeal calculate --deal lease-with-rent --property house --deposit 1,000 --rent 50
  barodeal calculate --deal sale --property house --price 90,000 --rate 0.3 --format json`,
	Args: cobra.NoArgs,
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&calcRegion, "region", "r", "", "region (default from config)")
	calculateCmd.Flags().StringVarP(&calcDeal, "deal", "d", "", "deal type")
	calculateCmd.Flags().StringVarP(&calcProperty, "property", "p", "", "property type")
	calculateCmd.Flags().StringVar(&calcPrice, "price", "", "price or deposit in 만원 (sale, lease-deposit)")
	calculateCmd.Flags().StringVar(&calcDeposit, "deposit", "", "deposit in 만원 (lease-with-rent)")
	calculateCmd.Flags().StringVar(&calcRent, "rent", "", "monthly rent in 만원 (lease-with-rent)")
	calculateCmd.Flags().StringVar(&calcRate, "rate", "", "negotiated rate in percent, e.g. 0.3")
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	formatter, err := formatterFor(cfg, outputFormat)
	if err != nil {
		return err
	}
	engine, err := app.NewEngine(cfg)
	if err != nil {
		return err
	}

	req := fee.Request{
		Price:          calcPrice,
		Deposit:        calcDeposit,
		MonthlyRent:    calcRent,
		NegotiatedRate: calcRate,
	}
	if calcRegion != "" {
		region, ok := types.ParseRegion(calcRegion)
		if !ok {
			return fmt.Errorf("unknown region %q", calcRegion)
		}
		req.Region = region
	}
	if deal, ok := types.ParseDealType(calcDeal); ok {
		req.Deal = deal
	} else {
		req.Deal = types.DealType(calcDeal)
	}
	if calcProperty != "" {
		req.Property = types.ParsePropertyType(calcProperty)
	}

	outcome := engine.Evaluate(req)
	if err := formatter.Render(cmd.OutOrStdout(), outcome); err != nil {
		return err
	}

	if outcome.State == fee.StateFailed {
		logging.Debug("calculation failed", zap.Error(outcome.Err))
		return outcome.Err
	}
	return nil
}

func formatterFor(cfg *config.Config, flag string) (output.Formatter, error) {
	name := flag
	if name == "" {
		name = cfg.Output.DefaultFormat
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return output.For(format)
}
