package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Fesaa/mnema/internal/model"
	contentservice "github.com/Fesaa/mnema/internal/service/content"
	"github.com/Fesaa/mnema/internal/service/tracking"
	"github.com/urfave/cli/v2"
	"go-micro.dev/v4"
	"go-micro.dev/v4/client"
	"go-micro.dev/v4/logger"

	_ "github.com/go-micro/plugins/v4/registry/etcd"
)

const defaultTimeout = 2 * time.Minute

func main() {
	var (
		subscribe bool
		prov      string
		contentID string
		title     string
		baseDir   string
	)

	service := micro.NewService(
		micro.Name("mnema.watchctl"),
		micro.Flags(
			&cli.BoolFlag{
				Name:        "subscribe",
				Usage:       "Add a subscription instead of managing downloads",
				Destination: &subscribe,
			},
			&cli.StringFlag{
				Name:        "provider",
				Usage:       "Content provider",
				Destination: &prov,
			},
			&cli.StringFlag{
				Name:        "id",
				Usage:       "Content id at the provider",
				Destination: &contentID,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "Display title for the subscription",
				Destination: &title,
			},
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "Base directory the content is stored under",
				Destination: &baseDir,
			},
		),
	)
	service.Init()

	c := service.Client()

	if subscribe {
		sub := model.Subscription{
			ContentID: contentID,
			Provider:  model.Provider(prov),
			Title:     title,
			BaseDir:   baseDir,
		}
		var resp tracking.Empty
		req := c.NewRequest("mnema", "Tracking.Subscribe", &sub)
		if err := c.Call(context.Background(), req, &resp, client.WithRequestTimeout(defaultTimeout)); err != nil {
			panic(err)
		}
		logger.Infof("Subscribed to %s:%s", prov, contentID)
		return
	}

	var list contentservice.ListResponse
	req := c.NewRequest("mnema", "Content.List", &contentservice.Empty{})
	if err := c.Call(context.Background(), req, &list, client.WithRequestTimeout(defaultTimeout)); err != nil {
		panic(err)
	}

	if len(list.Content) == 0 {
		fmt.Println("Nothing is being downloaded")
		return
	}

	for i, item := range list.Content {
		fmt.Printf("#%d. %s [%s:%s] %s\n", i+1, item.Title, item.Provider, item.ContentID, item.State)
	}
	fmt.Println("\nSelect which one to start:")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	no, err := strconv.ParseInt(scanner.Text(), 10, 32)
	if err != nil || no < 1 || int(no) > len(list.Content) {
		panic("invalid selection")
	}
	selected := list.Content[no-1]

	var resp contentservice.Empty
	start := c.NewRequest("mnema", "Content.MoveToQueue", &contentservice.MoveToQueueRequest{
		Provider:  selected.Provider,
		ContentID: selected.ContentID,
	})
	if err := c.Call(context.Background(), start, &resp, client.WithRequestTimeout(defaultTimeout)); err != nil {
		panic(err)
	}
	fmt.Println("Started: ", selected.Title)
}
