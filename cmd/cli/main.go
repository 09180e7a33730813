package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/avaldes/blogboard/internal/blogs"
	"github.com/avaldes/blogboard/internal/comments"
	"github.com/avaldes/blogboard/internal/config"
	"github.com/avaldes/blogboard/internal/pagination"
	"github.com/avaldes/blogboard/internal/session"
	"github.com/avaldes/blogboard/internal/store"
	"github.com/avaldes/blogboard/internal/users"
)

func main() {
	var (
		username = flag.String("username", "", "Username for login")
		password = flag.String("password", "", "Password for login")
		page     = flag.Int("page", 1, "Blog list page to show")
		blogID   = flag.String("blog", "", "Blog id to show in detail")
		comment  = flag.String("comment", "", "Comment text to post on the blog given by -blog")
		logout   = flag.Bool("logout", false, "Clear the saved session")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := store.NewClient(cfg.StoreBaseURL)
	directory := users.NewDirectory(client)
	catalog := blogs.NewCatalog(client)
	commentStore := comments.NewStore(client, directory, cfg.DefaultUsername)
	sessions := session.NewStore(cfg.SessionFile)

	ctx := context.Background()

	switch {
	case *logout:
		if err := sessions.Clear(); err != nil {
			log.Fatalf("Clearing session failed: %v", err)
		}
		fmt.Println("Session cleared")

	case *username != "":
		user, err := directory.FindCredential(ctx, *username, *password)
		if err != nil {
			log.Fatalf("Credential check failed: %v", err)
		}
		if user == nil {
			fmt.Println("Invalid username or password")
			os.Exit(1)
		}
		if err := sessions.Save(*user); err != nil {
			log.Fatalf("Saving session failed: %v", err)
		}
		fmt.Printf("Logged in as %s (id %s)\n", user.Username, user.ID)

	case *comment != "":
		if *blogID == "" {
			log.Fatal("-comment requires -blog")
		}
		thread, err := commentStore.Open(ctx, *blogID)
		if err != nil {
			log.Fatalf("Opening comment thread failed: %v", err)
		}
		created, err := thread.Submit(ctx, *comment)
		if err != nil {
			log.Fatalf("Submitting comment failed: %v", err)
		}
		if created == nil {
			fmt.Println("Nothing to submit")
			return
		}
		fmt.Printf("Comment %s posted by %s\n", created.ID, thread.UsernameFor(created.UserID))

	case *blogID != "":
		blog, err := catalog.GetByID(ctx, *blogID)
		if err != nil {
			log.Fatalf("Fetching blog failed: %v", err)
		}
		if blog == nil {
			fmt.Println("Blog not found")
			os.Exit(1)
		}
		fmt.Printf("%s (%s)\n\n%s\n", blog.Title, blog.PublishedAt, blog.Content)

		thread, err := commentStore.Open(ctx, *blogID)
		if err != nil {
			log.Fatalf("Loading comments failed: %v", err)
		}
		list := thread.Comments()
		fmt.Printf("\n%d comment(s)\n", len(list))
		for _, c := range list {
			fmt.Printf("  [%s] %s\n", thread.UsernameFor(c.UserID), c.Content)
		}

	default:
		all, err := catalog.ListAll(ctx)
		if err != nil {
			log.Fatalf("Listing blogs failed: %v", err)
		}
		pageItems, err := pagination.Paginate(all, *page, cfg.PageSize)
		if err != nil {
			log.Fatalf("Paginating blogs failed: %v", err)
		}
		pages, _ := pagination.PageCount(len(all), cfg.PageSize)
		fmt.Printf("Page %d of %d (%d blogs)\n", *page, pages, len(all))
		for _, b := range pageItems {
			fmt.Printf("  %s  %s (%s)\n", b.ID, b.Title, b.PublishedAt)
		}
	}
}
