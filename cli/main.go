package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ghetzel/cli"
	"github.com/ghetzel/go-stockutil/pathutil"
	"github.com/ghetzel/rplot"
	"github.com/op/go-logging"
)

var DefaultRenderFormat = `json`
var DefaultParser = `graphite`
var DefaultAddress = `127.0.0.1:8420`
var log = logging.MustGetLogger(`main`)

func main() {
	app := cli.NewApp()
	app.Name = `rplot`
	app.Usage = `Plot time-series data as line charts.`
	app.Version = `0.1.0`
	app.EnableBashCompletion = false

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   `log-level, L`,
			Usage:  `Level of log output verbosity`,
			Value:  `info`,
			EnvVar: `LOGLEVEL`,
		},
	}

	app.Before = func(c *cli.Context) error {
		logging.SetFormatter(logging.MustStringFormatter(`%{color}%{level:.4s}%{color:reset}[%{id:04d}] %{message}`))

		if level, err := logging.LogLevel(c.String(`log-level`)); err == nil {
			logging.SetLevel(level, ``)
		} else {
			return err
		}

		return nil
	}

	graphFlags := []cli.Flag{
		cli.StringFlag{
			Name:  `output, o`,
			Usage: `Where to write the rendered graph ("-" for standard output).`,
			Value: `-`,
		},
		cli.StringFlag{
			Name:  `format, f`,
			Usage: `The image format to render (png or svg).`,
			Value: string(rplot.RenderFormatPNG),
		},
		cli.StringFlag{
			Name:  `title, T`,
			Usage: `The title of the graph.`,
		},
		cli.IntFlag{
			Name:  `width, W`,
			Usage: `Width of the graph in pixels.`,
			Value: rplot.DefaultWidth,
		},
		cli.IntFlag{
			Name:  `height, H`,
			Usage: `Height of the graph in pixels.`,
			Value: rplot.DefaultHeight,
		},
		cli.StringFlag{
			Name:  `palette, P`,
			Usage: `A named palette or a comma-separated list of hex colors.`,
		},
		cli.StringFlag{
			Name:  `font`,
			Usage: `Path to a TrueType font used for titles and labels.`,
		},
		cli.Float64Flag{
			Name:  `markers, m`,
			Usage: `Draw a marker of this radius at every point.`,
		},
		cli.BoolFlag{
			Name:  `calendar`,
			Usage: `Place month and year ticks on real calendar boundaries.`,
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      `push`,
			ArgsUsage: `PATH`,
			Usage:     `Push time series observations into the named dataset as read from standard input.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  `parser, p`,
					Usage: `The parser to use for decoding input data.`,
					Value: DefaultParser,
				},
			},
			Action: func(c *cli.Context) {
				parser, ok := rplot.GetParser(c.String(`parser`))

				if !ok {
					log.Fatalf("Unknown parser %q", c.String(`parser`))
				}

				dataset := openDataset(c)
				defer dataset.Close()

				scanner := bufio.NewScanner(os.Stdin)
				count := 0

				for scanner.Scan() {
					if name, point, err := parser.Parse(scanner.Text()); err == nil {
						if err := dataset.Write(rplot.NewMetric(name), point); err != nil {
							log.Fatalf("write failed: %v", err)
						}

						count++
					} else {
						log.Warningf("%v", err)
					}
				}

				if err := scanner.Err(); err != nil {
					log.Fatalf("Error reading input: %v", err)
				}

				log.Infof("Wrote %d points", count)
			},
		}, {
			Name:      `ls`,
			ArgsUsage: `PATH [PATTERN]`,
			Usage:     `List metric names from the dataset.`,
			Action: func(c *cli.Context) {
				dataset := openDataset(c)
				defer dataset.Close()

				pattern := c.Args().Get(1)

				if pattern == `` {
					pattern = `**`
				}

				if names, err := dataset.GetNames(pattern); err == nil {
					for _, name := range names {
						fmt.Println(name)
					}
				} else {
					log.Fatalf("Failed to retrieve names: %v", err)
				}
			},
		}, {
			Name:      `query`,
			ArgsUsage: `PATH SERIES [SERIES ..]`,
			Usage:     `Query the named dataset and output the results in a given format.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  `format, f`,
					Usage: `The output format (json, graphite or kairosdb).`,
					Value: DefaultRenderFormat,
				},
				cli.StringFlag{
					Name:  `start-time, s`,
					Usage: `The start time for retrieving data.`,
					Value: `-1h`,
				},
				cli.StringFlag{
					Name:  `end-time, e`,
					Usage: `The end time for retrieving data.`,
				},
				cli.StringFlag{
					Name:  `interval, i`,
					Usage: `Consolidate points into buckets of this duration.`,
				},
				cli.StringFlag{
					Name:  `fn`,
					Usage: `The reducer used when consolidating.`,
					Value: `mean`,
				},
			},
			Action: func(c *cli.Context) {
				metrics := queryMetrics(c)

				if v := c.String(`interval`); v != `` {
					interval, err := time.ParseDuration(v)

					if err != nil {
						log.Fatalf("Invalid interval: %v", err)
					}

					reducer, err := rplot.ParseReducer(c.String(`fn`))

					if err != nil {
						log.Fatal(err)
					}

					for i, metric := range metrics {
						metrics[i] = metric.Consolidate(interval, reducer)
					}
				}

				switch format := c.String(`format`); format {
				case `json`:
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent(``, `  `)

					if err := enc.Encode(metrics); err != nil {
						log.Fatal(err)
					}

				default:
					if formatter, ok := rplot.GetFormatter(format); ok {
						for _, metric := range metrics {
							for _, point := range metric.Points() {
								fmt.Println(formatter.Format(metric, point))
							}
						}
					} else {
						log.Fatalf("Unknown formatter %q", format)
					}
				}
			},
		}, {
			Name:      `graph`,
			ArgsUsage: `PATH SERIES [SERIES ..]`,
			Usage:     `Render stored series as a line chart.`,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  `start-time, s`,
					Usage: `The start time for retrieving data.`,
					Value: `-1h`,
				},
				cli.StringFlag{
					Name:  `end-time, e`,
					Usage: `The end time for retrieving data.`,
				},
				cli.StringFlag{
					Name:  `group, g`,
					Usage: `Merge series sharing this tag (or "name").`,
					Value: `name`,
				},
				cli.StringFlag{
					Name:  `fn`,
					Usage: `Consolidate to one point per pixel with this reducer.`,
				},
				cli.StringFlag{
					Name:  `ymin`,
					Usage: `Fix the bottom of the y axis.`,
				},
				cli.StringFlag{
					Name:  `ymax`,
					Usage: `Fix the top of the y axis.`,
				},
			}, graphFlags...),
			Action: func(c *cli.Context) {
				graph := rplot.NewMetricsGraph(rplot.MergeMetrics(queryMetrics(c), c.String(`group`)))

				if v := c.String(`fn`); v != `` {
					if reducer, err := rplot.ParseReducer(v); err == nil {
						graph.Options.Consolidate = reducer
					} else {
						log.Fatal(err)
					}
				}

				for _, bound := range []struct {
					flag string
					dest **float64
				}{
					{`ymin`, &graph.Options.YMin},
					{`ymax`, &graph.Options.YMax},
				} {
					if v := c.String(bound.flag); v != `` {
						var value float64

						if _, err := fmt.Sscan(v, &value); err != nil {
							log.Fatalf("Invalid --%s: %v", bound.flag, err)
						}

						*bound.dest = &value
					}
				}

				renderGraph(c, graph)
			},
		}, {
			Name:  `demo`,
			Usage: `Render a sample graph of a log curve and a sine wave.`,
			Flags: graphFlags,
			Action: func(c *cli.Context) {
				renderGraph(c, rplot.NewDemoGraph(time.Now()))
			},
		}, {
			Name:      `serve`,
			ArgsUsage: `PATH`,
			Usage:     `Serve the dataset's metrics and graphs over HTTP.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   `address, a`,
					Usage:  `The address to listen on.`,
					Value:  DefaultAddress,
					EnvVar: `RPLOT_ADDRESS`,
				},
			},
			Action: func(c *cli.Context) {
				dataset := openDataset(c)
				defer dataset.Close()

				log.Infof("Listening on %s", c.String(`address`))

				if err := http.ListenAndServe(c.String(`address`), rplot.NewServer(dataset)); err != nil {
					log.Fatal(err)
				}
			},
		}, {
			Name:      `rm`,
			ArgsUsage: `PATH SERIES [SERIES ..]`,
			Usage:     `Remove metrics from the given dataset.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  `older-than, B`,
					Usage: `Remove points older than the given duration or time.`,
				},
				cli.StringFlag{
					Name:  `newer-than, A`,
					Usage: `Remove points newer than the given duration or time.`,
				},
			},
			Action: func(c *cli.Context) {
				if c.NArg() < 2 {
					log.Fatalf("Must specify a dataset path and at least one series to remove.")
				}

				dataset := openDataset(c)
				defer dataset.Close()
				patterns := c.Args()[1:]

				before := c.String(`older-than`)
				after := c.String(`newer-than`)

				if before == `` && after == `` {
					if n, err := dataset.Remove(patterns...); err == nil {
						log.Noticef("Removed %d metrics", n)
					} else {
						log.Fatalf("Failed to remove metrics: %v", err)
					}

					return
				}

				if before != `` {
					if n, err := dataset.TrimBefore(parseTimeFlag(before), patterns...); err == nil {
						log.Noticef("Removed %d points older than %v", n, before)
					} else {
						log.Fatalf("Failed to remove points: %v", err)
					}
				}

				if after != `` {
					if n, err := dataset.TrimAfter(parseTimeFlag(after), patterns...); err == nil {
						log.Noticef("Removed %d points newer than %v", n, after)
					} else {
						log.Fatalf("Failed to remove points: %v", err)
					}
				}
			},
		}, {
			Name:      `compact`,
			ArgsUsage: `PATH`,
			Usage:     `Compact the given dataset.`,
			Action: func(c *cli.Context) {
				dataset := openDataset(c)
				defer dataset.Close()

				if err := dataset.Compact(); err != nil {
					log.Fatalf("Failed to compact dataset: %v", err)
				}
			},
		}, {
			Name:      `backup`,
			ArgsUsage: `PATH`,
			Usage:     `Dump a restorable backup of the dataset to standard output.`,
			Action: func(c *cli.Context) {
				dataset := openDataset(c)
				defer dataset.Close()

				if err := dataset.Backup(os.Stdout); err != nil {
					log.Fatalf("Failed to backup dataset: %v", err)
				}
			},
		}, {
			Name:      `restore`,
			ArgsUsage: `PATH`,
			Usage:     `Restore a backup of the dataset from standard input (ALL EXISTING DATA WILL BE DESTROYED.)`,
			Action: func(c *cli.Context) {
				dataset := openDataset(c)
				defer dataset.Close()

				if err := dataset.Restore(os.Stdin); err != nil {
					log.Fatalf("Failed to restore dataset: %v", err)
				}
			},
		},
	}

	app.Run(os.Args)
}

func openDataset(c *cli.Context) *rplot.Dataset {
	path := c.Args().First()

	if path == `` {
		log.Fatalf("Must specify a dataset path.")
	}

	if expanded, err := pathutil.ExpandUser(path); err == nil {
		path = expanded
	} else {
		log.Fatal(err)
	}

	dataset, err := rplot.OpenDataset(path)

	if err != nil {
		log.Fatalf("Failed to open dataset: %v", err)
	}

	return dataset
}

func queryMetrics(c *cli.Context) []*rplot.Metric {
	if c.NArg() < 2 {
		log.Fatalf("Must specify a dataset path and at least one series to retrieve.")
	}

	dataset := openDataset(c)
	defer dataset.Close()

	metrics, err := dataset.Range(
		parseTimeFlag(c.String(`start-time`)),
		parseTimeFlag(c.String(`end-time`)),
		c.Args()[1:]...,
	)

	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	return metrics
}

func renderGraph(c *cli.Context, graph *rplot.Graph) {
	if v := c.String(`title`); v != `` {
		graph.Options.Title = v
	}

	graph.Options.Width = c.Int(`width`)
	graph.Options.Height = c.Int(`height`)
	graph.Options.MarkerRadius = c.Float64(`markers`)

	if c.Bool(`calendar`) {
		graph.XTickers = []rplot.Ticker{rplot.NewAdaptiveTimeTicker(rplot.CalendarThresholdTable())}
	}

	if v := c.String(`palette`); v != `` {
		graph.Style.Series = rplot.SeriesStylesFor(v, 1)
	}

	if v := c.String(`font`); v != `` {
		if font, err := rplot.LoadFont(v); err == nil {
			graph.Style.Font = font
		} else {
			log.Fatalf("Failed to load font: %v", err)
		}
	}

	var w io.Writer = os.Stdout

	if output := c.String(`output`); output != `-` {
		if expanded, err := pathutil.ExpandUser(output); err == nil {
			output = expanded
		} else {
			log.Fatal(err)
		}

		file, err := os.Create(output)

		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}

		defer file.Close()
		w = file
	}

	if err := graph.RenderTo(w, rplot.RenderFormat(c.String(`format`))); err != nil {
		log.Fatalf("Graph render error: %v", err)
	}
}

func parseTimeFlag(timeval string) time.Time {
	if tm, err := rplot.ParseTimeString(timeval); err == nil {
		return tm
	} else {
		log.Fatal(err)
		return time.Time{}
	}
}
