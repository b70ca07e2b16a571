package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/gateway"
	"github.com/example/storefront/internal/geo"
	"github.com/example/storefront/internal/search"
	"github.com/spf13/cobra"
)

// execute runs one CLI invocation. The session store is closed on every
// path, including failed commands.
func execute(args []string, out, errOut io.Writer) error {
	a := &app{out: out, errOut: errOut}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse shops and products, and manage your shop",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.BoolVar(&a.mock, "mock", false, "use the in-process catalog instead of the HTTP services")
	flags.StringVar(&a.apiURL, "api", "", "backend base URL for every service (overrides NEXT_PUBLIC_* settings)")
	flags.BoolVar(&a.jsonOut, "json", false, "print raw JSON")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newMeCmd(a),
		newShopsCmd(a),
		newShopCmd(a),
		newProductCmd(a),
		newSearchCmd(a),
		newCategoriesCmd(a),
		newSellerCmd(a),
		newAdminCmd(a),
	)
	return root
}

// ===== session =====

func newLoginCmd(a *app) *cobra.Command {
	var req gateway.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a phone number or an identity-provider token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Phone == "" && req.FirebaseToken == "" {
				return errors.New("--phone or --firebase-token is required")
			}
			env, err := a.gw.Login(cmd.Context(), req)
			return render(a, env, err, func(w io.Writer, res gateway.LoginResponse) {
				fmt.Fprintf(w, "Signed in as %s (%s)\n", res.User.Name, res.Role)
				fmt.Fprintf(w, "Token expires %s\n", res.ExpiresAt.Local().Format("2006-01-02 15:04"))
			})
		},
	}
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.FirebaseToken, "firebase-token", "", "identity-provider ID token")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var req gateway.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.Register(cmd.Context(), req)
			return render(a, env, err, func(w io.Writer, u catalog.User) {
				fmt.Fprintf(w, "Registered %s, run `storefront login --phone %s` to sign in\n", u.Name, u.Phone)
			})
		},
	}
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Name, "name", "", "your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out")
			return nil
		},
	}
}

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.CurrentUser(cmd.Context())
			return render(a, env, err, printUser)
		},
	}
}

// ===== browsing =====

func newShopsCmd(a *app) *cobra.Command {
	var lat, lng, radius float64
	var nearby bool
	var query string
	cmd := &cobra.Command{
		Use:   "shops",
		Short: "List shops, nearest first when a location is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			var loc *geo.Point
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
				loc = &geo.Point{Lat: lat, Lng: lng}
			}
			if cmd.Flags().Changed("query") {
				env, err := a.gw.SearchShops(cmd.Context(), query, loc)
				return render(a, env, err, printShops)
			}
			env, err := a.gw.ListShops(cmd.Context(), gateway.ShopQuery{Location: loc, Nearby: nearby, RadiusKm: radius})
			return render(a, env, err, printShops)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "only shops matching this text")
	cmd.Flags().Float64Var(&lat, "lat", 0, "your latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "your longitude")
	cmd.Flags().BoolVar(&nearby, "nearby", false, "only shops within --radius")
	cmd.Flags().Float64Var(&radius, "radius", 0, "nearby radius in km (default 10)")
	return cmd
}

func newShopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shop <id>",
		Short: "Show a shop and its products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shop, err := a.gw.GetShop(cmd.Context(), args[0])
			if err := render(a, shop, err, printShop); err != nil {
				return err
			}
			products, err := a.gw.ShopProducts(cmd.Context(), args[0])
			return render(a, products, err, printProducts)
		},
	}
}

func newProductCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product with its shop and related products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := gateway.LoadProductDetail(cmd.Context(), a.gw, args[0])
			return render(a, env, err, func(w io.Writer, d gateway.ProductDetail) {
				p := d.Product
				fmt.Fprintf(w, "%s\t%.2f / %s\t%s\n", p.Name, p.Price, p.Unit, stock(p))
				fmt.Fprintf(w, "%s\n", p.Description)
				if d.Shop != nil {
					fmt.Fprintf(w, "Sold by %s (%s)\n", d.Shop.Name, orderState(d.Orderable))
				}
				if len(d.Related) > 0 {
					fmt.Fprintln(w, "\nRelated:")
					printProducts(w, d.Related)
				}
			})
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var category, typ string
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search shops and products",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := search.Params{Category: category, Type: search.Type(typ)}
			if len(args) == 1 {
				p.Query = args[0]
			}
			env, err := a.gw.Search(cmd.Context(), p)
			return render(a, env, err, func(w io.Writer, r search.Result) {
				if len(r.Shops) == 0 && len(r.Products) == 0 {
					fmt.Fprintln(w, "No results")
					return
				}
				if len(r.Shops) > 0 {
					fmt.Fprintf(w, "Shops (%d)\n", len(r.Shops))
					printShops(w, r.Shops)
				}
				if len(r.Products) > 0 {
					fmt.Fprintf(w, "Products (%d)\n", len(r.Products))
					printProducts(w, r.Products)
				}
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "exact category, or \""+search.AllCategories+"\"")
	cmd.Flags().StringVar(&typ, "type", "", "all, shops or products")
	return cmd
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.Categories(cmd.Context())
			return render(a, env, err, func(w io.Writer, cats []string) {
				for _, c := range cats {
					fmt.Fprintln(w, c)
				}
			})
		},
	}
}

// ===== seller =====

func newSellerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "seller", Short: "Manage your shop"}

	cmd.AddCommand(&cobra.Command{
		Use:   "shop",
		Short: "Show your shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.SellerShop(cmd.Context())
			return render(a, env, err, printShop)
		},
	})

	var shop catalog.Shop
	create := &cobra.Command{
		Use:   "create-shop",
		Short: "Register a shop for approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.CreateSellerShop(cmd.Context(), shop)
			return render(a, env, err, printShop)
		},
	}
	create.Flags().StringVar(&shop.Name, "name", "", "shop name")
	create.Flags().StringVar(&shop.Category, "category", "", "shop category")
	create.Flags().StringVar(&shop.Address, "address", "", "street address")
	create.Flags().StringVar(&shop.OpeningTime, "opens", "", "opening time, HH:MM")
	create.Flags().StringVar(&shop.ClosingTime, "closes", "", "closing time, HH:MM")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "products",
		Short: "List your products",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.SellerProducts(cmd.Context())
			return render(a, env, err, printProducts)
		},
	})

	var product catalog.Product
	add := &cobra.Command{
		Use:   "add-product",
		Short: "Add a product to your shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			product.InStock = product.Quantity > 0
			env, err := a.gw.AddSellerProduct(cmd.Context(), product)
			return render(a, env, err, func(w io.Writer, p catalog.Product) {
				printProducts(w, []catalog.Product{p})
			})
		},
	}
	add.Flags().StringVar(&product.Name, "name", "", "product name")
	add.Flags().StringVar(&product.Category, "category", "", "product category")
	add.Flags().Float64Var(&product.Price, "price", 0, "unit price")
	add.Flags().StringVar(&product.Unit, "unit", "piece", "sales unit")
	add.Flags().IntVar(&product.Quantity, "quantity", 0, "units in stock")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete-product <id>",
		Short: "Remove a product from your shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.DeleteSellerProduct(cmd.Context(), args[0])
			return render(a, env, err, func(w io.Writer, p catalog.Product) {
				fmt.Fprintf(w, "Deleted %s\n", p.Name)
			})
		},
	})
	return cmd
}

// ===== admin =====

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "admin", Short: "Moderate shops"}

	var status string
	shops := &cobra.Command{
		Use:   "shops",
		Short: "List every shop, optionally by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.AdminShops(cmd.Context(), catalog.ShopStatus(status))
			return render(a, env, err, printShops)
		},
	}
	shops.Flags().StringVar(&status, "status", "", "active, pending or suspended")
	cmd.AddCommand(shops)

	cmd.AddCommand(&cobra.Command{
		Use:   "set-status <shop-id> <status>",
		Short: "Approve or suspend a shop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.SetShopStatus(cmd.Context(), args[0], catalog.ShopStatus(args[1]))
			return render(a, env, err, printShop)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show marketplace totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.gw.AdminStats(cmd.Context())
			return render(a, env, err, func(w io.Writer, s catalog.Stats) {
				fmt.Fprintf(w, "Shops\t%d\n", s.TotalShops)
				fmt.Fprintf(w, "Products\t%d\n", s.TotalProducts)
				fmt.Fprintf(w, "Users\t%d\n", s.TotalUsers)
				fmt.Fprintf(w, "Pending approvals\t%d\n", s.PendingApprovals)
			})
		},
	})
	return cmd
}

// ===== output =====

func printUser(w io.Writer, u catalog.User) {
	fmt.Fprintf(w, "ID\t%s\n", u.ID)
	fmt.Fprintf(w, "Name\t%s\n", u.Name)
	fmt.Fprintf(w, "Phone\t%s\n", u.Phone)
	fmt.Fprintf(w, "Role\t%s\n", u.Role)
}

func printShop(w io.Writer, s catalog.Shop) {
	fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, s.Status)
	fmt.Fprintf(w, "%s\t%s\n", s.Category, s.Address)
	if s.OpeningTime != "" {
		fmt.Fprintf(w, "Hours\t%s-%s\t%s\n", s.OpeningTime, s.ClosingTime, orderState(s.Orderable()))
	}
}

func printShops(w io.Writer, shops []catalog.Shop) {
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRATING\tSTATUS\tDISTANCE")
	for _, s := range shops {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, s.Category, strconv.FormatFloat(s.Rating, 'f', 1, 64), s.Status, s.DistanceFormatted)
	}
}

func printProducts(w io.Writer, products []catalog.Product) {
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f/%s\t%s\n", p.ID, p.Name, p.Category, p.Price, p.Unit, stock(p))
	}
}

func stock(p catalog.Product) string {
	if !p.InStock {
		return "out of stock"
	}
	return strconv.Itoa(p.Quantity) + " left"
}

func orderState(orderable bool) string {
	if orderable {
		return "open for orders"
	}
	return "not taking orders"
}
