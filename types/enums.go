// File: types/enums.go
package types

import (
	"strings"

	"golang.org/x/exp/slices"
)

// The dashboard API accepts a closed set of filter names, area types and
// structure fields. The tables below are the authoritative listings, in the
// order the developers guide documents them.
//
// Given by: https://coronavirus.data.gov.uk/developers-guide
//
// Last update: 2020/09/12

type member struct {
	name string
	desc string
}

var filterTable = []member{
	{"areaType", "Area type as string"},
	{"areaName", "Area name as string"},
	{"areaCode", "Area Code as string"},
	{"date", "Date as string [YYYY-MM-DD]"},
}

var areaTypeTable = []member{
	{"overview", "Overview data for the United Kingdom"},
	{"nation", "Nation data (England, Northern Ireland, Scotland, and Wales)"},
	{"region", "Region data"},
	{"nhsRegion", "NHS Region data"},
	{"utla", "Upper-tier local authority data"},
	{"ltla", "Lower-tier local authority data"},
}

var structureTable = []member{
	{"areaType", "Area type as string"},
	{"areaName", "Area name as string"},
	{"areaCode", "Area Code as string"},
	{"date", "Date as string [YYYY-MM-DD]"},
	{"hash", "Unique ID as string"},
	{"newCasesByPublishDate", "New cases by publish date"},
	{"cumCasesByPublishDate", "Cumulative cases by publish date"},
	{"cumCasesBySpecimenDateRate", "Rate of cumulative cases by specimen date per 100k resident population"},
	{"newCasesBySpecimenDate", "New cases by specimen date"},
	{"maleCases", "Male cases (by age)"},
	{"femaleCases", "Female cases (by age)"},
	{"newPillarOneTestsByPublishDate", "New pillar one tests by publish date"},
	{"cumPillarOneTestsByPublishDate", "Cumulative pillar one tests by publish date"},
	{"newPillarTwoTestsByPublishDate", "New pillar two tests by publish date"},
	{"cumPillarTwoTestsByPublishDate", "Cumulative pillar two tests by publish date"},
	{"newPillarThreeTestsByPublishDate", "New pillar three tests by publish date"},
	{"cumPillarThreeTestsByPublishDate", "Cumulative pillar three tests by publish date"},
	{"newPillarFourTestsByPublishDate", "New pillar four tests by publish date"},
	{"cumPillarFourTestsByPublishDate", "Cumulative pillar four tests by publish date"},
	{"newAdmissions", "New admissions"},
	{"cumAdmissions", "Cumulative number of admissions"},
	{"cumAdmissionsByAge", "Cumulative admissions by age"},
	{"newTestsByPublishDate", "New tests by publish date"},
	{"cumTestsByPublishDate", "Cumulative tests by publish date"},
	{"covidOccupiedMVBeds", "COVID-19 occupied beds with mechanical ventilators"},
	{"hospitalCases", "Hospital cases"},
	{"plannedCapacityByPublishDate", "Planned capacity by publish date"},
	{"newDeaths28DaysByPublishDate", "Deaths within 28 days of positive test"},
	{"cumDeaths28DaysByPublishDate", "Cumulative deaths within 28 days of positive test"},
	{"cumDeaths28DaysByPublishDateRate", "Rate of cumulative deaths within 28 days of positive test per 100k resident population"},
	{"newDeaths28DaysByDeathDate", "Deaths within 28 days of positive test by death date"},
	{"cumDeaths28DaysByDeathDate", "Cumulative deaths within 28 days of positive test by death date"},
	{"cumDeaths28DaysByDeathDateRate", "Rate of cumulative deaths within 28 days of positive test by death date per 100k resident population"},
}

var (
	filters         = names(filterTable)
	areaTypes       = names(areaTypeTable)
	structureFields = names(structureTable)
)

func names(table []member) []string {
	out := make([]string, len(table))
	for i, m := range table {
		out[i] = m.name
	}
	return out
}

func describe(table []member) string {
	lines := make([]string, len(table))
	for i, m := range table {
		lines[i] = m.name + " - " + m.desc
	}
	return strings.Join(lines, "\n")
}

// Filters returns every valid filter name in documented order.
func Filters() []string {
	return slices.Clone(filters)
}

// AreaTypes returns every valid areaType value in documented order.
func AreaTypes() []string {
	return slices.Clone(areaTypes)
}

// StructureFields returns every valid structure field in documented order.
func StructureFields() []string {
	return slices.Clone(structureFields)
}

// IsValidFilter reports whether name is a valid filter name. Matching is
// exact and case-sensitive.
func IsValidFilter(name string) bool {
	return slices.Contains(filters, name)
}

// IsValidAreaType reports whether value is a valid areaType value. Matching
// is exact and case-sensitive.
func IsValidAreaType(value string) bool {
	return slices.Contains(areaTypes, value)
}

// IsValidStructureField reports whether field is a valid structure field.
// Matching is exact and case-sensitive.
func IsValidStructureField(field string) bool {
	return slices.Contains(structureFields, field)
}

// FilterDescriptions returns a description of every filter name, one member
// per line.
func FilterDescriptions() string {
	return describe(filterTable)
}

// AreaTypeDescriptions returns a description of every areaType value, one
// member per line.
func AreaTypeDescriptions() string {
	return describe(areaTypeTable)
}

// StructureFieldDescriptions returns a description of every structure field,
// one member per line.
func StructureFieldDescriptions() string {
	return describe(structureTable)
}
