// Package shell runs the read-eval loop of the interactive shell.
//
// Each input line goes through the steps of
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
// restricted to pipelines of simple commands:
//
//  1. The shell reads its input from the terminal, from a script on stdin or
//     from the -c option. A line ending inside quotes or after a pipe is
//     joined with the next one.
//
//  2. The input is broken into tokens: words and operators. Quotes and
//     parameter expansion are resolved while tokenizing.
//
//  3. The tokens are parsed into a tree of commands, pipes and redirections.
//
//  4. Heredoc bodies are read, in order, before anything runs.
//
//  5. Redirections are performed and the commands executed, builtins inside
//     the shell and everything else as child processes.
//
//  6. The shell waits for every command to complete and records the exit
//     status of the last one as $?.
package shell
