// main.go
//
// A small relational record service for users, products and the orders that join them
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of storedb.
// storedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// storedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with storedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/localnerve/storedb/internal/config"
	"github.com/localnerve/storedb/internal/database"
	"github.com/localnerve/storedb/internal/logging"
	"github.com/localnerve/storedb/internal/services"
	"github.com/localnerve/storedb/internal/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	var serverURL string
	flag.StringVar(&serverURL, "url", "", "server URL to check is listening (default http://localhost:$PORT)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg)

	if serverURL == "" {
		serverURL = "http://localhost:" + cfg.Port
	}
	if err := utils.PingService(serverURL, 1500*time.Millisecond); err != nil {
		fmt.Printf("{\"status\": \"unhealthy\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db, log)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if !result.Healthy() {
		os.Exit(1)
	}
}
