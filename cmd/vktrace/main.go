// Copyright (C) 2020 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// vktrace drives the VkApi interception layer against an in-process stub
// driver, collects the debug-marker trace it emits and writes the packet
// stream to a file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rschiu/gapid/core/log"
	"github.com/rschiu/gapid/core/vulkan/vk"
	"github.com/rschiu/gapid/core/vulkan/vkapi"
	"github.com/rschiu/gapid/gapis/perfetto/tracing"
)

type options struct {
	out     string
	markers int
	workers int
	verbose bool
}

func main() {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "vktrace",
		Short: "Collect a GPU debug-marker trace through the VkApi layer",
		Long: `vktrace bootstraps the VkApi interception layer on a stub driver chain,
emits debug markers through it and writes the resulting trace packet
stream to a file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "vkapi.trace", "trace output file")
	cmd.Flags().IntVarP(&opts.markers, "markers", "n", 16, "number of debug markers to emit")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 4, "number of concurrent marker emitters")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "show debug logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts options) error {
	ctx := log.PutHandler(context.Background(), log.Std())
	if !opts.verbose {
		ctx = log.PutFilter(ctx, log.SeverityFilter(log.Info))
	}

	driver := &stubDriver{}
	registry := vkapi.NewRegistry()
	system := tracing.NewSystem()
	layer := vkapi.NewLayer(ctx, registry, system)

	var instance vk.Instance
	if result := layer.CreateInstance(driver.instanceChain(), nil, &instance); result != vk.Success {
		return errors.Errorf("creating instance: %v", result)
	}
	defer layer.DestroyInstance(instance, nil)

	var device vk.Device
	if result := layer.CreateDevice(1, driver.deviceChain(), nil, &device); result != vk.Success {
		return errors.Errorf("creating device: %v", result)
	}
	defer layer.DestroyDevice(device, nil)

	out, err := os.Create(opts.out)
	if err != nil {
		return errors.Wrap(err, "creating trace file")
	}
	defer out.Close()

	session, err := system.StartTracing(ctx, tracing.Config{
		DataSources: []string{vkapi.VkAPIDataSource, vkapi.RenderStageDataSource},
	}, out)
	if err != nil {
		return errors.Wrap(err, "starting trace session")
	}

	// Resolve the marker entry point the way an application would, through
	// the layer's own dispatch.
	setName, ok := layer.GetDeviceProcAddr(device, "vkDebugMarkerSetObjectNameEXT").(vk.DebugMarkerSetObjectNameFunc)
	if !ok {
		return errors.New("vkDebugMarkerSetObjectNameEXT did not resolve")
	}

	grp, _ := errgroup.WithContext(ctx)
	for w := 0; w < opts.workers; w++ {
		worker := w
		grp.Go(func() error {
			for i := worker; i < opts.markers; i += opts.workers {
				info := &vk.DebugMarkerObjectNameInfo{
					ObjectType: 9,
					Object:     uint64(0x100 + i),
					ObjectName: fmt.Sprintf("object %d", i),
				}
				if result := setName(device, info); result != vk.Success {
					return errors.Errorf("naming object %d: %v", i, result)
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	if err := session.Stop(ctx); err != nil {
		return errors.Wrap(err, "stopping trace session")
	}
	if err := session.Wait(ctx); err != nil {
		return err
	}

	return report(ctx, opts.out)
}

// report reads the trace file back and summarizes its contents.
func report(ctx context.Context, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening trace file")
	}
	defer in.Close()

	packets, err := tracing.ReadTrace(in)
	if err != nil {
		return errors.Wrap(err, "reading trace file")
	}

	markers, stages, specs := 0, 0, 0
	for _, p := range packets {
		switch {
		case p.VulkanDebugMarker != nil:
			markers++
		case p.GpuRenderStageEvent != nil && p.GpuRenderStageEvent.Specifications != nil:
			specs++
		case p.GpuRenderStageEvent != nil:
			stages++
		}
	}
	log.Bind(ctx, log.V{
		"packets":        len(packets),
		"markers":        markers,
		"render-stages":  stages,
		"specifications": specs,
	}).I("Wrote %s", path)
	return nil
}
