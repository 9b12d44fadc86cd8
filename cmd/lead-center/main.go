// The lead center is a CRM backend with hierarchical record
// visibility.
package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kart-io/lead-center/cmd/lead-center/app"
)

func main() {
	app.NewApp().Run()
}
