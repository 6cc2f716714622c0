package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hashEncoding string

func init() {
	cmd := newHashCmd()
	cmd.Flags().StringVarP(&hashEncoding, "encoding", "e", "", "Also encode the text with this charset")
	rootCmd.AddCommand(cmd)
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <text>",
		Short: "Show the hash code and storage details of a string",
		Long: `The hash command builds a managed string and reports its hash code,
length in code units and code points, and bytes of backing storage. With
--encoding it also prints the encoded bytes in hex.

Example:
  strctl hash Hello
  strctl hash --encoding windows-1252 "€100"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(args)
		},
	}
}

type hashResult struct {
	Text        string `json:"text"`
	Hash        int32  `json:"hash"`
	Units       int    `json:"units"`
	CodePoints  int    `json:"code_points"`
	StorageSize int64  `json:"storage_size"`
	Encoding    string `json:"encoding,omitempty"`
	Encoded     string `json:"encoded,omitempty"`
}

func runHash(args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	f, err := factoryFor(e)
	if err != nil {
		return err
	}
	s, err := f.FromString(args[0])
	if err != nil {
		return fmt.Errorf("failed to build string: %w", err)
	}
	defer s.Release()

	cps, err := s.CodePointCount(0, s.Len())
	if err != nil {
		return err
	}
	res := hashResult{
		Text:        s.String(),
		Hash:        s.HashCode(),
		Units:       s.Len(),
		CodePoints:  cps,
		StorageSize: s.StorageSize(),
	}
	if hashEncoding != "" {
		b, err := s.Bytes(hashEncoding)
		if err != nil {
			return err
		}
		res.Encoding = hashEncoding
		res.Encoded = fmt.Sprintf("%x", b)
	}

	if jsonOut {
		return printJSON(res)
	}
	printInfo("Hash: %d\n", res.Hash)
	printInfo("  Units: %d\n", res.Units)
	printInfo("  Code points: %d\n", res.CodePoints)
	printInfo("  Storage: %d bytes\n", res.StorageSize)
	if res.Encoding != "" {
		printInfo("  %s: %s\n", res.Encoding, res.Encoded)
	}
	return nil
}
