// Builds testdata/sample.xlsx for trying out the CLI by hand:
//
//	go run ./testdata/create_test_file.go
package main

import (
	"fmt"
	"log"

	"cellq/internal/xlsxio"
)

func main() {
	people := [][]string{
		{"Alice", "30", "New York", "Engineering"},
		{"Bob", "25", "San Francisco", "Marketing"},
		{"Charlie", "35", "Seattle", "Engineering"},
		{"David", "28", "Austin", "Sales"},
		{"Eve", "32", "Boston", "Engineering"},
		{"Frank", "27", "Chicago", "Marketing"},
		{"Grace", "29", "Denver", "Sales"},
		{"Henry", "31", "Portland", "Engineering"},
		{"Iris", "26", "Miami", "Marketing"},
		{"Jack", "33", "Atlanta", "Sales"},
	}

	products := [][]string{
		{"Laptop", "999.99", "50"},
		{"Mouse", "29.99", "200"},
		{"Keyboard", "79.99", "150"},
		{"Monitor", "299.99", "75"},
		{"Headphones", "149.99", "100"},
	}

	path := "testdata/sample.xlsx"

	if _, err := xlsxio.CreateFile(path, "People",
		[]string{"Name", "Age", "City", "Department"}, people, true); err != nil {
		log.Fatal(err)
	}
	if _, err := xlsxio.CreateSheet(path, "Products",
		[]string{"Product", "Price", "Stock"}); err != nil {
		log.Fatal(err)
	}
	if _, err := xlsxio.AppendRows(path, "Products", products); err != nil {
		log.Fatal(err)
	}
	if _, err := xlsxio.SetActiveSheet(path, "People"); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Created", path, "with", len(people), "people and", len(products), "products")
}
