// Command mcu is the command-line front end for MyCommonUtilsLib.
package main

import "github.com/texhnolyzze/MyCommonUtilsLib/cmd"

func main() {
	cmd.Execute()
}
