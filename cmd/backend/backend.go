// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"net/http"
	"path/filepath"
	"time"

	mosaic "github.com/ManuDeBuck/picture-mosaic-generator"
	"github.com/ManuDeBuck/picture-mosaic-generator/web"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var addr, root string
	var maxAge time.Duration
	var verbose bool
	cmd := &cobra.Command{
		Use:          "backend",
		Short:        "Serve the mosaic generator over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mosaic.SetLogLevel(verbose)
			expanded, expandErr := homedir.Expand(root)
			if expandErr != nil {
				return expandErr
			}
			absRoot, absErr := filepath.Abs(expanded)
			if absErr != nil {
				return absErr
			}
			memStorage := web.NewMemStorage()
			context := web.NewContext(memStorage, absRoot)
			done := web.RunFilter(memStorage, maxAge, maxAge/2)
			defer close(done)
			log.WithFields(log.Fields{
				"addr": addr,
				"root": absRoot,
			}).Info("Starting server")
			return http.ListenAndServe(addr, web.DefaultHandlers(context))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8085", "address to listen on")
	cmd.Flags().StringVar(&root, "root", ".", "directory containing source and candidate images")
	cmd.Flags().DurationVar(&maxAge, "max-age", 30*time.Minute, "sessions expire after this duration without a request")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	if err := cmd.Execute(); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
