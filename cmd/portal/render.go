package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	portal "github.com/timokthy/library-portal"
)

var headingColor = color.New(color.FgCyan, color.Bold)

func renderHeading(w io.Writer, title string) {
	headingColor.Fprintf(w, "\n==========| %s |==========\n\n", title)
}

// renderBranches prints full information for each matched branch: the most
// recent record's details followed by a per-year statistics table.
func renderBranches(w io.Writer, records []portal.BranchRecord) {
	byCode := make(map[string][]portal.BranchRecord)
	var codes []string
	for _, r := range records {
		if _, ok := byCode[r.Code]; !ok {
			codes = append(codes, r.Code)
		}
		byCode[r.Code] = append(byCode[r.Code], r)
	}

	for _, code := range codes {
		recs := byCode[code]
		latest := recs[len(recs)-1]

		headingColor.Fprintf(w, "\n*****LIBRARY BRANCH INFORMATION*****\n\n")
		fmt.Fprintf(w, "Library Name: %s\n", orNA(latest.Name))
		fmt.Fprintf(w, "Library Number: %s\n", orNA(latest.Code))
		fmt.Fprintf(w, "Service Region: %s\n", orNA(latest.ServiceRegion))
		fmt.Fprintf(w, "Street Address: %s\n", formatAddress(latest))
		fmt.Fprintf(w, "Website or E-mail: %s\n", orNA(latest.Website))
		fmt.Fprintf(w, "Number of Print Resources: %s\n", fmtStat(latest.Stat(portal.ColTotalPrint)))
		fmt.Fprintf(w, "Number of e-Book/e-Audio Resources: %s\n", fmtStat(latest.Stat(portal.ColTotalElectronic)))

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Year", "Cardholders", "Print Titles", "E-Resources", "Total Resources"})
		for _, r := range recs {
			table.Append([]string{
				strconv.Itoa(r.Year),
				fmtStat(r.Stat(portal.ColCardholders)),
				fmtStat(r.Stat(portal.ColTotalPrint)),
				fmtStat(r.Stat(portal.ColTotalElectronic)),
				fmtStat(r.Stat(portal.ColTotalResources)),
			})
		}
		fmt.Fprintln(w)
		table.Render()
	}
}

// renderRanked prints the closest branches, nearest first.
func renderRanked(w io.Writer, results []portal.RankedBranch, limit int) {
	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Code", "Library", "City", "Distance (km)"})
	for i, r := range results[:limit] {
		table.Append([]string{
			strconv.Itoa(i + 1),
			r.Branch.Code,
			r.Branch.Name,
			r.Branch.City,
			fmt.Sprintf("%.1f", r.DistanceKm),
		})
	}
	table.Render()
}

// renderSummary prints the yearly archive: totals and record-holders per
// statistic column.
func renderSummary(w io.Writer, s portal.YearlySummary) {
	headingColor.Fprintf(w, "\n*******LIBRARY STATISTICAL ARCHIVES IN %d*******\n\n", s.Year)
	fmt.Fprintf(w, "Reporting branches: %d\n\n", s.Branches)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Statistic", "Total", "Reported", "Record Holder(s)"})
	for _, cs := range s.Columns {
		table.Append([]string{
			string(cs.Column),
			strconv.FormatInt(cs.Total, 10),
			strconv.Itoa(cs.Reported),
			formatHolders(cs.Holders),
		})
	}
	table.Render()
}

func formatHolders(holders []portal.BranchValue) string {
	if len(holders) == 0 {
		return "N/A"
	}
	out := ""
	for i, h := range holders {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s (%d)", h.Name, h.Value)
	}
	return out
}

func formatAddress(r portal.BranchRecord) string {
	if r.Address == "" {
		return "N/A"
	}
	addr := r.Address
	if r.City != "" {
		addr += ", " + r.City + ", ON"
	}
	if r.PostalCode != "" {
		addr += ", " + r.PostalCode
	}
	return addr
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func fmtStat(s portal.Stat) string {
	if !s.Known() {
		return "N/A"
	}
	return strconv.FormatInt(s.Value(), 10)
}
