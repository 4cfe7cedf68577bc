package main

import (
	"fmt"

	"github.com/coviduk/cov19api/client"
	"github.com/coviduk/cov19api/types"

	"github.com/rs/zerolog"
)

func main() {
	c := client.NewCov19ApiClient(client.Config{}, zerolog.Nop())

	if err := c.SetFilter("areaType", "nation"); err != nil {
		fmt.Println("Error setting filter:", err)
		return
	}
	if err := c.SetFilter("areaName", "england"); err != nil {
		fmt.Println("Error setting filter:", err)
		return
	}
	for _, field := range []string{"areaName", "date", "newCasesByPublishDate", "cumCasesByPublishDate"} {
		if err := c.SetStructure(field, ""); err != nil {
			fmt.Println("Error setting structure field:", err)
			return
		}
	}

	fmt.Println("Request URL:")
	fmt.Println(c.RequestURL())

	fmt.Println("\nValid filters:")
	fmt.Println(types.FilterDescriptions())

	fmt.Println("\nValid area types:")
	fmt.Println(types.AreaTypeDescriptions())

	fmt.Println("\nValid structure fields:")
	fmt.Println(types.StructureFieldDescriptions())
}
