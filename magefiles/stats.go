//go:build mage

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// packageLines counts production and test lines of one directory.
type packageLines struct {
	Prod int `json:"prod"`
	Test int `json:"test"`
}

// Stats prints Go line counts per package as one JSON object per line,
// followed by the totals.
func Stats() error {
	perDir := map[string]*packageLines{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch path {
			case "vendor", ".git", "magefiles", binaryDir:
				return filepath.SkipDir
			}
			if strings.HasPrefix(info.Name(), "_") || (strings.HasPrefix(info.Name(), ".") && path != ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		dir := filepath.Dir(path)
		if perDir[dir] == nil {
			perDir[dir] = &packageLines{}
		}
		if strings.HasSuffix(path, "_test.go") {
			perDir[dir].Test += count
		} else {
			perDir[dir].Prod += count
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(perDir))
	for d := range perDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var total packageLines
	for _, d := range dirs {
		total.Prod += perDir[d].Prod
		total.Test += perDir[d].Test
		if err := printJSON(map[string]any{"package": d, "go_loc_prod": perDir[d].Prod, "go_loc_test": perDir[d].Test}); err != nil {
			return err
		}
	}
	return printJSON(map[string]any{"package": "total", "go_loc_prod": total.Prod, "go_loc_test": total.Test, "go_loc": total.Prod + total.Test})
}

func printJSON(record map[string]any) error {
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
