package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dotlas/api-client-go/pkg/dotlas"
)

// StatsRow pairs a city name with its statistics for workbook export.
type StatsRow struct {
	City  string
	Stats dotlas.CityStats
}

var statsHeader = []string{
	"City",
	"Average Individual Income",
	"Median Household Income",
	"Population Total",
	"Population Youth",
	"Population Middle Age",
	"Population Senior",
	"Work Transportation Self Mobility",
	"Household Income Low",
	"Household Income Medium",
	"Household Income High",
	"Households Total",
	"Households Family Total",
	"Average Household Composition",
}

// WriteStatsWorkbook writes one row per city to an XLSX workbook at path.
func WriteStatsWorkbook(path string, rows []StatsRow) error {
	if len(rows) == 0 {
		return eris.New("export: no stats rows to write")
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("City Stats")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range statsHeader {
		header.AddCell().Value = h
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().Value = r.City
		row.AddCell().SetFloat(r.Stats.AverageIndividualIncome)
		row.AddCell().SetFloat(r.Stats.MedianHouseholdIncome)
		row.AddCell().SetInt(r.Stats.PopulationTotal)
		row.AddCell().SetInt(r.Stats.PopulationYouth)
		row.AddCell().SetInt(r.Stats.PopulationMiddleAge)
		row.AddCell().SetInt(r.Stats.PopulationSenior)
		row.AddCell().SetInt(r.Stats.WorkTransportationSelfMobility)
		row.AddCell().SetInt(r.Stats.HouseholdIncomeLow)
		row.AddCell().SetInt(r.Stats.HouseholdIncomeMedium)
		row.AddCell().SetInt(r.Stats.HouseholdIncomeHigh)
		row.AddCell().SetInt(r.Stats.HouseholdsTotal)
		row.AddCell().SetInt(r.Stats.HouseholdsFamilyTotal)
		row.AddCell().SetFloat(r.Stats.AverageHouseholdComposition)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}
