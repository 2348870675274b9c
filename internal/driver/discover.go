package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"amberfy/internal/shaderjob"
)

// Directory names of the work-tree layout fuzzers produce: a test lives in
// variant/NAME.json with its unmutated twin in a sibling reference/NAME.json.
const (
	variantDirName   = "variant"
	referenceDirName = "reference"
)

// Pair is one discovered conversion: a variant job JSON, the reference job
// JSON paired with it (empty when the variant stands alone), and the output
// path the script goes to.
type Pair struct {
	Variant   string
	Reference string
	Output    string
}

// listJobFiles возвращает отсортированный список всех *.json файлов под
// root, у которых есть хотя бы один .asm стейдж.
func listJobFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		stages, err := shaderjob.RelatedFiles(path, shaderjob.AllExtensions, []string{shaderjob.SuffixAsmSPIRV})
		if err != nil {
			return err
		}
		// JSON без стейджей — не shader job, пропускаем.
		if len(stages) == 0 {
			return nil
		}
		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// pairedReference returns the path of the reference job that would pair
// with jobJSON under the work-tree layout, or "" when jobJSON is not inside
// a variant directory.
func pairedReference(jobJSON string) string {
	dir := filepath.Dir(jobJSON)
	if filepath.Base(dir) != variantDirName {
		return ""
	}
	return filepath.Join(filepath.Dir(dir), referenceDirName, filepath.Base(jobJSON))
}

// DiscoverJobs walks root and returns every conversion to run, in sorted
// order. A JSON file counts as a shader job when at least one .asm stage
// file sits next to it. A job in a variant directory claims the job of the
// same name in the sibling reference directory; claimed references do not
// convert standalone. Output paths replace .json with .amber next to the
// (variant) job.
func DiscoverJobs(root string) ([]Pair, error) {
	files, err := listJobFiles(root)
	if err != nil {
		return nil, err
	}

	isJob := make(map[string]bool, len(files))
	for _, path := range files {
		isJob[path] = true
	}

	// Две прохода: сначала отмечаем занятые reference-джобы, потом строим
	// пары. Иначе reference/NAME.json (сортируется раньше) ушёл бы в выдачу
	// самостоятельно.
	claimed := make(map[string]bool)
	for _, path := range files {
		if ref := pairedReference(path); ref != "" && isJob[ref] {
			claimed[ref] = true
		}
	}

	var pairs []Pair
	for _, path := range files {
		if claimed[path] {
			continue
		}
		pair := Pair{
			Variant: path,
			Output:  strings.TrimSuffix(path, ".json") + ".amber",
		}
		if ref := pairedReference(path); ref != "" && isJob[ref] {
			pair.Reference = ref
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
