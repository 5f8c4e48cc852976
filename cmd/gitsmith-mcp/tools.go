package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createInitiateLoginTool returns the initiate_login tool definition
func createInitiateLoginTool() mcp.Tool {
	return mcp.NewTool("initiate_login",
		mcp.WithDescription("Start a GitHub device-flow login. Returns a verification URL and user code; follow up with verify_login once the user has entered the code"),
	)
}

// createVerifyLoginTool returns the verify_login tool definition
func createVerifyLoginTool() mcp.Tool {
	return mcp.NewTool("verify_login",
		mcp.WithDescription("Poll GitHub until the device-flow login started by initiate_login completes, then return the access token"),
		mcp.WithString("device_code",
			mcp.Required(),
			mcp.Description("Device code returned by initiate_login"),
		),
		mcp.WithNumber("interval",
			mcp.Description("Poll interval in seconds as recommended by initiate_login (default: 5)"),
		),
	)
}

// createGetUserContextTool returns the get_user_context tool definition
func createGetUserContextTool() mcp.Tool {
	return mcp.NewTool("get_user_context",
		mcp.WithDescription("Fetch the authenticated user's identity and their 10 most recently updated repositories"),
	)
}

// createSearchRepositoriesTool returns the search_repositories tool definition
func createSearchRepositoriesTool() mcp.Tool {
	return mcp.NewTool("search_repositories",
		mcp.WithDescription("Search repositories the authenticated user can access"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (GitHub repository search syntax)"),
		),
	)
}

// createGetRepositoryMapTool returns the get_repository_map tool definition
func createGetRepositoryMapTool() mcp.Tool {
	return mcp.NewTool("get_repository_map",
		mcp.WithDescription("List the files of a repository branch (recursive tree, files only, capped at 200 paths)"),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Repository owner"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch name (default: main)"),
		),
	)
}

// createGetProjectOverviewTool returns the get_project_overview tool definition
func createGetProjectOverviewTool() mcp.Tool {
	return mcp.NewTool("get_project_overview",
		mcp.WithDescription("Summarize a repository: language histogram, dependency manifest, and README excerpt"),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Repository owner"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name"),
		),
	)
}

// createInspectTargetFileTool returns the inspect_target_file tool definition
func createInspectTargetFileTool() mcp.Tool {
	return mcp.NewTool("inspect_target_file",
		mcp.WithDescription("Fetch a file's content with its blob SHA, recent commit history, and the pull request behind the latest change. The SHA is required by commit_file_update"),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Repository owner"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path within the repository"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch name (default: main)"),
		),
	)
}

// createReadReferencesTool returns the read_references tool definition
func createReadReferencesTool() mcp.Tool {
	return mcp.NewTool("read_references",
		mcp.WithDescription("Fetch the content of several files concurrently. Failed paths report inline errors without affecting the others"),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Repository owner"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name"),
		),
		mcp.WithArray("paths",
			mcp.WithStringItems(),
			mcp.Required(),
			mcp.Description("File paths to fetch"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch name (default: main)"),
		),
	)
}

// createInitializeWorkspaceTool returns the initialize_workspace tool definition
func createInitializeWorkspaceTool() mcp.Tool {
	return mcp.NewTool("initialize_workspace",
		mcp.WithDescription("Create a timestamped working branch from a base branch. First step of the write sequence"),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Repository owner"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name"),
		),
		mcp.WithString("base_branch",
			mcp.Description("Base branch to fork from (default: main)"),
		),
	)
}

// createCommitFileUpdateTool returns the commit_file_update tool definition
func createCommitFileUpdateTool() mcp.Tool {
	return mcp.NewTool("commit_file_update",
		mcp.WithDescription("Commit new content for a file on a branch, guarded by the blob SHA from inspect_target_file. Rejected with a conflict if the file changed since"),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Repository owner"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name"),
		),
		mcp.WithString("branch",
			mcp.Required(),
			mcp.Description("Branch created by initialize_workspace"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path to update"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("New file content"),
		),
		mcp.WithString("original_sha",
			mcp.Required(),
			mcp.Description("Blob SHA captured by inspect_target_file"),
		),
		mcp.WithString("message",
			mcp.Description("Commit message"),
		),
	)
}

// createSubmitReviewRequestTool returns the submit_review_request tool definition
func createSubmitReviewRequestTool() mcp.Tool {
	return mcp.NewTool("submit_review_request",
		mcp.WithDescription("Open a pull request from the working branch back to the base branch. Final step of the write sequence"),
		mcp.WithString("owner",
			mcp.Required(),
			mcp.Description("Repository owner"),
		),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name"),
		),
		mcp.WithString("head_branch",
			mcp.Required(),
			mcp.Description("Branch holding the committed change"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Pull request title"),
		),
		mcp.WithString("body",
			mcp.Description("Pull request description"),
		),
		mcp.WithString("base_branch",
			mcp.Description("Target branch (default: main)"),
		),
	)
}
