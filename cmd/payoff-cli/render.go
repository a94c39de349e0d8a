package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/hwpayoff/runtime/contracts"
	"github.com/hwpayoff/runtime/internal/format"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printDevelopers(w io.Writer, devs []contracts.DeveloperSummary) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tMODELS")
	for _, d := range devs {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", d.ID, d.Name, d.ModelCount)
	}
	return tw.Flush()
}

func printModels(w io.Writer, models []contracts.ModelSpec) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPARAMS\tMIN RAM\tTIER\tMAC TOK/S\tSPARK TOK/S\tCLOUD TOK/S")
	for _, m := range models {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%gGB\t%s\t%g\t%g\t%g\n",
			m.ID, m.Name, m.Params, m.MinRAM, m.Tier, m.LocalTokPerSec, m.AltHardwareTokPerSec, m.CloudTokPerSec)
	}
	return tw.Flush()
}

func printModes(w io.Writer, modes []contracts.TrainingMode) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tMULTIPLIER\tDESCRIPTION")
	for _, m := range modes {
		fmt.Fprintf(tw, "%s\t%s\t%g×\t%s\n", m.ID, m.Name, m.Multiplier, m.Description)
	}
	return tw.Flush()
}

func printComparison(w io.Writer, b contracts.ComparisonBundle) error {
	fmt.Fprintf(w, "Hardware:    %s, %s\n", b.Hardware.Name, format.FormatUSD(b.Hardware.PriceUSD))
	fmt.Fprintf(w, "Memory:      %gGB needed of %gGB (%s)\n",
		b.Memory.TotalRAM, b.Memory.AvailableRAM, b.Memory.Memory.TrainingMode)

	if !b.CanRun {
		fmt.Fprintf(w, "Cannot run:  short by %gGB", b.Memory.Deficit)
		if len(b.Memory.IncompatibleModels) > 0 {
			fmt.Fprintf(w, "; not supported: %s", strings.Join(b.Memory.IncompatibleModels, ", "))
		}
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprintf(w, "Throughput:  %g tok/s, %s tokens/day (%s)\n\n",
		b.LocalTPS, format.FormatTokens(b.TokensPerDay), humanize.Comma(int64(b.TokensPerDay)))

	tw := newTable(w)
	fmt.Fprintln(tw, "CLOUD GPU\tGPUS\tHOURS/DAY\tPER DAY\tPAYOFF")
	for _, c := range b.Cloud {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			c.Provider, c.GPUs, format.FormatHours(c.HoursNeeded), format.FormatUSD(c.DailyCost), format.FormatPayoff(c.PayoffMonths))
	}
	fmt.Fprintln(tw, "\t\t\t\t")
	fmt.Fprintln(tw, "OSS API\tBLENDED/1M\t\tPER DAY\tPAYOFF")
	for _, a := range b.OSSAPI {
		fmt.Fprintf(tw, "%s\t%s\t\t%s\t%s\n",
			a.Provider, format.FormatUSD(a.BlendedPer1M), format.FormatUSD(a.DailyCost), format.FormatPayoff(a.PayoffMonths))
	}
	fmt.Fprintln(tw, "\t\t\t\t")
	fmt.Fprintln(tw, "PROPRIETARY\tBLENDED/1M\tSPEED\tPER DAY\tPAYOFF")
	for _, p := range b.Proprietary {
		fmt.Fprintf(tw, "%s\t%s\t%.1f×\t%s\t%s\n",
			p.Provider, format.FormatUSD(p.BlendedPer1M), p.SpeedRatio, format.FormatUSD(p.DailyCost), format.FormatPayoff(p.PayoffMonths))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if b.Best != nil {
		fmt.Fprintf(w, "\nBest alternative: %s %s at %s/day, hardware pays off in %s\n",
			b.Best.Kind, b.Best.Provider, format.FormatUSD(b.Best.DailyCost), format.FormatPayoff(b.Best.PayoffMonths))
	}
	return nil
}

func printSweep(w io.Writer, bundles []contracts.ComparisonBundle) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "HARDWARE\tPRICE\tFITS\tTOKENS/DAY\tBEST ALTERNATIVE\tPAYOFF")
	for _, b := range bundles {
		fits := "yes"
		if !b.CanRun {
			fits = fmt.Sprintf("no (-%gGB)", b.Memory.Deficit)
		}
		best, payoff := "-", format.NotAvailable
		if b.Best != nil {
			best = fmt.Sprintf("%s %s", b.Best.Kind, b.Best.Provider)
			payoff = format.FormatPayoff(b.Best.PayoffMonths)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			b.Hardware.Name, format.FormatUSD(b.Hardware.PriceUSD), fits, format.FormatTokens(b.TokensPerDay), best, payoff)
	}
	return tw.Flush()
}
