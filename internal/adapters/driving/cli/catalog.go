package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	catalogfile "github.com/counterline-labs/shoptalk/internal/adapters/driven/catalog/file"
	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

var (
	catalogSearchLimit int
	catalogJSON        bool
	catalogWatch       bool

	addProductID          string
	addProductName        string
	addProductPrice       float64
	addProductStock       int
	addProductCategory    string
	addProductDescription string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the product catalog",
	Long:  `List, search, inspect, and load products in the catalog.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	RunE:  runCatalogList,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search products by keyword",
	Long: `Performs a case-insensitive keyword search over product names,
categories, and descriptions. Name matches rank highest.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogSearch,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a product's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product to the catalog",
	RunE:  runCatalogAdd,
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a product from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogRemove,
}

var catalogLoadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Load products from a TOML catalog file",
	Long: `Load products from a TOML file into the catalog. Existing products
with matching IDs are updated.

With --watch, keeps running and reloads the catalog whenever the file
changes on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogLoad,
}

func init() {
	catalogSearchCmd.Flags().IntVarP(&catalogSearchLimit, "limit", "n", 10, "maximum number of results")
	catalogSearchCmd.Flags().BoolVar(&catalogJSON, "json", false, "output results as JSON")
	catalogListCmd.Flags().BoolVar(&catalogJSON, "json", false, "output results as JSON")

	catalogAddCmd.Flags().StringVar(&addProductID, "id", "", "product ID (generated when empty)")
	catalogAddCmd.Flags().StringVar(&addProductName, "name", "", "product name (required)")
	catalogAddCmd.Flags().Float64Var(&addProductPrice, "price", 0, "product price")
	catalogAddCmd.Flags().IntVar(&addProductStock, "stock", 0, "units in stock")
	catalogAddCmd.Flags().StringVar(&addProductCategory, "category", "", "product category")
	catalogAddCmd.Flags().StringVar(&addProductDescription, "description", "", "product description")
	_ = catalogAddCmd.MarkFlagRequired("name")

	catalogLoadCmd.Flags().BoolVar(&catalogWatch, "watch", false, "reload when the file changes")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)
	catalogCmd.AddCommand(catalogLoadCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	products, err := catalogService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing catalog: %w", err)
	}

	if catalogJSON {
		return printJSON(cmd, products)
	}

	if len(products) == 0 {
		cmd.Println("Catalog is empty.")
		return nil
	}

	cmd.Printf("%d products:\n\n", len(products))
	for i := range products {
		printProductLine(cmd, &products[i])
	}
	return nil
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	matches, err := catalogService.Search(cmd.Context(), args[0], catalogSearchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if catalogJSON {
		return printJSON(cmd, matches)
	}

	if len(matches) == 0 {
		cmd.Println("No matching products found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range matches {
		cmd.Printf("  [%d] %s (%.1f)\n", i+1, matches[i].Product.Name, matches[i].Score)
		cmd.Printf("      ID: %s  Price: %.2f  Stock: %d\n",
			matches[i].Product.ID, matches[i].Product.Price, matches[i].Product.Stock)
		if matches[i].Product.Description != "" {
			cmd.Printf("      %s\n", matches[i].Product.Description)
		}
		cmd.Println()
	}
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	product, err := catalogService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("product %q not found", args[0])
		}
		return err
	}

	if catalogJSON {
		return printJSON(cmd, product)
	}

	cmd.Printf("ID:          %s\n", product.ID)
	cmd.Printf("Name:        %s\n", product.Name)
	cmd.Printf("Price:       %.2f\n", product.Price)
	cmd.Printf("Stock:       %d\n", product.Stock)
	if product.Category != "" {
		cmd.Printf("Category:    %s\n", product.Category)
	}
	if product.Description != "" {
		cmd.Printf("Description: %s\n", product.Description)
	}
	return nil
}

func runCatalogAdd(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	product := domain.Product{
		ID:          addProductID,
		Name:        addProductName,
		Price:       addProductPrice,
		Stock:       addProductStock,
		Category:    addProductCategory,
		Description: addProductDescription,
	}

	if err := catalogService.Add(cmd.Context(), product); err != nil {
		return fmt.Errorf("adding product: %w", err)
	}

	cmd.Printf("Added product %q\n", product.Name)
	return nil
}

func runCatalogRemove(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	if err := catalogService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("removing product: %w", err)
	}

	cmd.Printf("Removed product %s\n", args[0])
	return nil
}

func runCatalogLoad(cmd *cobra.Command, args []string) error {
	if catalogStore == nil {
		return errors.New("catalog store not configured")
	}

	loader := catalogfile.NewLoader(args[0], catalogStore)
	count, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Loaded %d products from %s\n", count, args[0])

	if catalogWatch {
		cmd.Println("Watching for changes (Ctrl-C to stop)...")
		if err := loader.Watch(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

func printProductLine(cmd *cobra.Command, product *domain.Product) {
	stock := fmt.Sprintf("%d in stock", product.Stock)
	if !product.InStock() {
		stock = "out of stock"
	}
	cmd.Printf("  %-6s %-24s %10.2f  %s\n", product.ID, product.Name, product.Price, stock)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
