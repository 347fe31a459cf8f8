package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sonarsheet/sonarsheet/internal/contract"
)

// writeFunc is the writeWithFile/appendWithFile signature, so printers can be
// parameterized over truncate-vs-append behavior.
type writeFunc func(outputFile string, writer func(io.Writer) error, successMsg string) error

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	return writeWithOpener(outputFile, contract.SelectOutputFile, writer, successMsg)
}

// appendWithFile is writeWithFile in append mode, preserving whatever an
// earlier section already wrote to the same output file.
func appendWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	return writeWithOpener(outputFile, contract.AppendOutputFile, writer, successMsg)
}

func writeWithOpener(outputFile string, open func(string) (*os.File, error), writer func(io.Writer) error, successMsg string) error {
	file, err := open(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	return writeRows(csvWriter)
}
