// Command heapctl drives the first-fit arena allocator from the command line
// and prints the block chain after every step.
package main

func main() {
	execute()
}
