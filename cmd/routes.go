package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ivmanto/site/internal/routes"
	"github.com/ivmanto/site/internal/seo"
)

var resolveJSON bool

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATTERN\tPARENT\tLAZY")
		for _, rt := range routes.Table() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", rt.Name, rt.Pattern, rt.Parent, rt.Lazy)
		}
		return w.Flush()
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Resolve a URL against the route table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := routes.Resolve(args[0])
		if err != nil {
			return err
		}
		if resolveJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		if res.Redirect != "" {
			fmt.Printf("redirect  %s (replace=%t)\n", res.Redirect, res.Replace)
			return nil
		}
		fmt.Printf("route     %s\n", res.Route.Name)
		for k, v := range res.Params {
			fmt.Printf("param     %s=%s\n", k, v)
		}
		if u, err := url.Parse(args[0]); err == nil {
			fmt.Printf("title     %s\n", seo.Resolve(u.Path).Title)
		}
		fmt.Printf("not found %t\n", res.NotFound)
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print the resolution as JSON")
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(resolveCmd)
}
