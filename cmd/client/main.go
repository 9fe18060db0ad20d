package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nestjam/shortlink/internal/client"
)

func main() {
	const (
		minCount          = 2
		wrongArgs         = "expand, shorten or ping subcommand required"
		shortenSubcommand = "shorten"
		expandSubcommand  = "expand"
		pingSubcommand    = "ping"
	)

	if len(os.Args) < minCount {
		exit(wrongArgs)
	}

	shortenSet := flag.NewFlagSet(shortenSubcommand, flag.ExitOnError)
	serverAddr := shortenSet.String("a", "http://localhost:8080/", "address of shortener server")
	useJSON := shortenSet.Bool("j", false, "use JSON API")

	expandSet := flag.NewFlagSet(expandSubcommand, flag.ExitOnError)

	pingSet := flag.NewFlagSet(pingSubcommand, flag.ExitOnError)
	pingAddr := pingSet.String("a", "http://localhost:8080/", "address of shortener server")

	switch os.Args[1] {
	case shortenSubcommand:
		err := shortenSet.Parse(os.Args[minCount:])

		if err != nil {
			exit(err)
		}

		shortenURLs(shortenSet.Args(), *serverAddr, *useJSON)
	case expandSubcommand:
		err := expandSet.Parse(os.Args[minCount:])

		if err != nil {
			exit(err)
		}

		expandURLs(expandSet.Args())
	case pingSubcommand:
		err := pingSet.Parse(os.Args[minCount:])

		if err != nil {
			exit(err)
		}

		ping(*pingAddr)
	default:
		exit(wrongArgs)
	}
}

func exit(msg any) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func expandURLs(urls []string) {
	client := client.New()

	for _, url := range urls {
		fullURL, err := client.Expand(url)

		if err != nil {
			exit(err)
		}

		fmt.Println(fullURL)
	}
}

func shortenURLs(urls []string, addr string, useJSON bool) {
	client := client.New(client.WithServerAddress(addr))
	shorten := client.Shorten
	if useJSON {
		shorten = client.ShortenJSON
	}

	for _, url := range urls {
		shortenedURL, err := shorten(url)

		if err != nil {
			exit(err)
		}

		fmt.Println(shortenedURL)
	}
}

func ping(addr string) {
	client := client.New(client.WithServerAddress(addr))

	if err := client.Ping(); err != nil {
		exit(err)
	}

	fmt.Println("ok")
}
