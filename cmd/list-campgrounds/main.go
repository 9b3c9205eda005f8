package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/campsight/campsight/internal/httpx"
	"github.com/campsight/campsight/internal/providers"
)

// Prints the reservable campground catalog as "id<TAB>name" lines. An
// optional argument filters by name substring. Useful for picking roster
// entries for the service config.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	filter := ""
	if len(os.Args) >= 2 {
		filter = strings.ToLower(os.Args[1])
	}

	client := httpx.New(30 * time.Second)
	limiter := rate.NewLimiter(rate.Limit(2), 4)
	provider := providers.NewRecreationGov("", client, limiter)

	log.Println("Fetching campground catalog...")
	campgrounds, err := provider.FetchAllCampgrounds(ctx)
	if err != nil {
		log.Fatal("Failed to fetch campgrounds:", err)
	}

	printed := 0
	for _, cg := range campgrounds {
		if filter != "" && !strings.Contains(strings.ToLower(cg.Name), filter) {
			continue
		}
		fmt.Printf("%s\t%s\n", cg.ID, cg.Name)
		printed++
	}
	log.Printf("Printed %d of %d campgrounds", printed, len(campgrounds))
}
