/*
 * This file is part of the Go Cesium Point Cloud Tiler distribution (https://github.com/mfbonfigli/gocesiumtiler).
 * Copyright (c) 2019 Massimo Federico Bonfigli - m.federico.bonfigli@gmail.com
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ecopia-map/cesium_tileset/internal/tiler"
	"github.com/ecopia-map/cesium_tileset/pkg"
	"github.com/ecopia-map/cesium_tileset/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/cesium_tileset/tools"
	"github.com/golang/glog"
)

const VERSION = "1.0.0"

func main() {
	flagsGlobal := tools.ParseFlagsGlobal()
	defer glog.Flush()

	if *flagsGlobal.Version {
		printVersion()
		return
	}

	if *flagsGlobal.Help {
		showHelp()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		glog.Fatalf("Please specify a subcommand [%s].", strings.Join(tools.Commands, "|"))
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandTransform:
		flags := tools.ParseFlagsForCommandTransform(args)
		runCommand(flags.CommonFlags.Help, flags.CommonFlags.Silent, flags.TilerOptions)
	case tools.CommandBox:
		flags := tools.ParseFlagsForCommandBox(args)
		runCommand(flags.CommonFlags.Help, flags.CommonFlags.Silent, flags.TilerOptions)
	case tools.CommandRegion:
		flags := tools.ParseFlagsForCommandRegion(args)
		runCommand(flags.CommonFlags.Help, flags.CommonFlags.Silent, flags.TilerOptions)
	case tools.CommandAnchored:
		flags := tools.ParseFlagsForCommandAnchored(args)
		runCommand(flags.CommonFlags.Help, flags.CommonFlags.Silent, flags.TilerOptions)
	case tools.CommandBatch:
		flags := tools.ParseFlagsForCommandBatch(args)
		runCommand(flags.CommonFlags.Help, flags.CommonFlags.Silent, flags.TilerOptions)
	case tools.CommandVerify:
		mainCommandVerify(args)
	default:
		glog.Fatalf("Unrecognized command [%q]. Command must be one of [%s]", cmd, strings.Join(tools.Commands, "|"))
	}
}

// Runs one of the commands that write or print descriptors
func runCommand(help *bool, silent *bool, tilerOptions func() (*tiler.TilerOptions, error)) {
	if *help {
		showHelp()
		return
	}
	if *silent {
		tools.DisableLogger()
	}

	// Put args inside a TilerOptions struct
	opts, err := tilerOptions()
	if err != nil {
		glog.Fatal("Error parsing input parameters: ", err)
	}

	// Validate TilerOptions
	if msg, res := validateOptions(opts); !res {
		glog.Fatal("Error parsing input parameters: " + msg)
	}
	glog.V(1).Infoln("options", tools.FmtJSONString(opts))

	algorithmManager, err := std_algorithm_manager.NewAlgorithmManager(opts)
	if err != nil {
		glog.Fatal("Error preparing coordinate conversion: ", err)
	}

	var t tiler.ITiler
	if opts.Command == tools.CommandTransform {
		t = pkg.NewTilerTransform(algorithmManager)
	} else {
		t = pkg.NewTilerBatch(tools.NewStandardFileFinder(), algorithmManager)
	}

	defer timeTrack(time.Now(), opts.Command)
	if err := t.RunTiler(opts); err != nil {
		glog.Fatal("Error while writing: ", err)
	}
	tools.LogOutput("Conversion Completed")
}

// Validates the input options provided to the command line tool checking
// that input files and folders exist
func validateOptions(opts *tiler.TilerOptions) (string, bool) {
	if opts.Command == tools.CommandBatch {
		if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
			return "Input file/folder not found", false
		}
	}

	if opts.Proj4 == "" && opts.Srid <= 0 {
		return "srid must be a positive EPSG code", false
	}

	return "", true
}

func mainCommandVerify(args []string) {
	flags := tools.ParseFlagsForCommandVerify(args)

	if *flags.Help {
		showHelp()
		return
	}
	if *flags.Silent {
		tools.DisableLogger()
	}

	opts := flags.TilerOptions()
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		glog.Fatal("Error parsing input parameters: Input file/folder not found")
	}

	if err := pkg.NewTilerVerify(tools.NewStandardFileFinder()).RunTiler(opts); err != nil {
		glog.Fatal("Verification failed: ", err)
	}
	tools.LogOutput("Verification Completed")
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func showHelp() {
	fmt.Println("***")
	fmt.Println("cesium_tileset derives ENU to ECEF transforms and writes single tile 3D Tiles tileset.json descriptors")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Printf("Usage: cesium_tileset [global flags] <%s> [command flags]\n", strings.Join(tools.Commands, "|"))
	fmt.Println("Run a command with -help to list its flags.")
	fmt.Println("")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
